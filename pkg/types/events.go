package types

import "time"

// 事件类型名
const (
	EventTypeAuthorization      = "authorization"
	EventTypeAccountInitialized = "account_initialized"
	EventTypeLeasesExtended     = "leases_extended"
	EventTypeLedgerAdvanced     = "ledger_advanced"
)

// BaseEvent 事件公共字段
type BaseEvent struct {
	EventType string
	Time      time.Time
}

// Type 返回事件类型
func (e BaseEvent) Type() string {
	return e.EventType
}

// Timestamp 返回事件时间戳
func (e BaseEvent) Timestamp() time.Time {
	return e.Time
}

// NewBaseEvent 创建基础事件
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{EventType: eventType, Time: time.Now()}
}

// EvtAuthorization 一次授权判定
//
// Signer 为声明地址，未经校验；被拒绝时 Reason 为错误文本。
type EvtAuthorization struct {
	BaseEvent
	Contract ContractID
	Signer   Identity
	Nonce    int64
	Ledger   uint32
	Accepted bool
	Reason   string
}

// EvtAccountInitialized 签名者已绑定
type EvtAccountInitialized struct {
	BaseEvent
	Contract ContractID
	Signer   Identity
	Ledger   uint32
}

// EvtLeasesExtended 账户租约已补满
type EvtLeasesExtended struct {
	BaseEvent
	Contract ContractID
	Ledger   uint32
}

// EvtLedgerAdvanced 账本前进
type EvtLedgerAdvanced struct {
	BaseEvent
	Ledger uint32
}
