package host

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-ethaccount/internal/core/storage/engine"
	"github.com/dep2p/go-ethaccount/internal/core/storage/kv"
	"github.com/dep2p/go-ethaccount/pkg/interfaces"
	"github.com/dep2p/go-ethaccount/pkg/lib/crypto"
	"github.com/dep2p/go-ethaccount/pkg/lib/log"
	"github.com/dep2p/go-ethaccount/pkg/types"
)

var logger = log.Logger("core/host")

// 键空间前缀
var (
	prefixLedger    = []byte("l/")
	prefixContracts = []byte("c/")
	prefixDeploy    = []byte("d/")
	prefixNonces    = []byte("n/")
)

// Host 账户合约宿主
// 采用门面（Facade）模式，聚合账本、存储、部署与授权调度
type Host struct {
	config *Config
	engine engine.InternalEngine

	ledger   *Ledger
	deployer *Deployer
	entries  *kv.Store
	nonces   *kv.Store

	hasher    interfaces.Hasher
	recoverer interfaces.Recoverer

	// 事件（可选）
	eventbus    interfaces.EventBus
	authEmitter interfaces.Emitter
	seqEmitter  interfaces.Emitter

	// 已注册代码：代码哈希 → 账户工厂
	codesMu sync.RWMutex
	codes   map[types.Hash]interfaces.AccountFactory

	// 调用串行化（容量 1 的信号量）
	exec chan struct{}

	// 生命周期
	started atomic.Bool
	closed  atomic.Bool
}

// New 创建新的 Host
func New(opts ...Option) (*Host, error) {
	h := &Host{
		config:    DefaultConfig(),
		hasher:    crypto.Keccak256Hasher{},
		recoverer: crypto.Secp256k1Recoverer{},
		codes:     make(map[types.Hash]interfaces.AccountFactory),
		exec:      make(chan struct{}, 1),
	}

	// 应用选项
	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	// 验证必需依赖
	if h.engine == nil {
		return nil, ErrNilEngine
	}

	ledger, err := NewLedger(kv.New(h.engine, prefixLedger))
	if err != nil {
		return nil, err
	}
	h.ledger = ledger
	h.entries = kv.New(h.engine, prefixContracts)
	h.nonces = kv.New(h.engine, prefixNonces)
	h.deployer = newDeployer(kv.New(h.engine, prefixDeploy), ledger, h.config)

	if h.eventbus != nil {
		if h.authEmitter, err = h.eventbus.Emitter(new(types.EvtAuthorization)); err != nil {
			return nil, fmt.Errorf("create authorization emitter: %w", err)
		}
		if h.seqEmitter, err = h.eventbus.Emitter(new(types.EvtLedgerAdvanced), interfaces.Stateful()); err != nil {
			return nil, fmt.Errorf("create ledger emitter: %w", err)
		}
	}

	return h, nil
}

// Config 返回配置
func (h *Host) Config() *Config {
	return h.config
}

// Ledger 返回账本
func (h *Host) Ledger() *Ledger {
	return h.ledger
}

// Deployer 返回部署服务
func (h *Host) Deployer() *Deployer {
	return h.deployer
}

// Storage 返回合约存储
func (h *Host) Storage(id types.ContractID) *ContractStorage {
	return newContractStorage(h.entries, h.ledger, h.config, id)
}

// ============================================================================
//                              代码与部署
// ============================================================================

// RegisterCode 注册账户代码
//
// 代码租约持久化；工厂只保存在内存中，每次进程启动需重新注册。
func (h *Host) RegisterCode(name string, factory interfaces.AccountFactory) (types.Hash, error) {
	if factory == nil {
		return types.Hash{}, errors.New("nil account factory")
	}
	hash, err := h.deployer.UploadCode(name)
	if err != nil {
		return types.Hash{}, err
	}

	h.codesMu.Lock()
	h.codes[hash] = factory
	h.codesMu.Unlock()

	logger.Debug("代码已注册", "name", name, "hash", hash.String()[:10])
	return hash, nil
}

// Deploy 部署合约实例
//
// 地址由网络口令和 salt 确定；同一 salt 只能部署一次。
func (h *Host) Deploy(name string, salt []byte) (types.ContractID, error) {
	hash := CodeHash(name)
	if _, ok := h.factory(hash); !ok {
		return types.ContractID{}, fmt.Errorf("%w: %s", ErrCodeNotFound, name)
	}

	id := ContractIDFromSalt(h.config.NetworkPassphrase, salt)
	if _, err := h.deployer.Deploy(id, name, hash); err != nil {
		return id, err
	}

	logger.Info("合约已部署", "contract", id.ShortString(), "code", name)
	return id, nil
}

// EnsureDeployed 部署合约实例，已部署时返回已有地址
func (h *Host) EnsureDeployed(name string, salt []byte) (types.ContractID, error) {
	id, err := h.Deploy(name, salt)
	if errors.Is(err, ErrContractExists) {
		return id, nil
	}
	return id, err
}

func (h *Host) factory(hash types.Hash) (interfaces.AccountFactory, bool) {
	h.codesMu.RLock()
	defer h.codesMu.RUnlock()
	f, ok := h.codes[hash]
	return f, ok
}

// ============================================================================
//                              调用
// ============================================================================

// Invoke 串行执行一次调用
//
// 同一时刻只有一个调用在执行；等待期间 ctx 取消则返回 ctx.Err()。
func (h *Host) Invoke(ctx context.Context, fn func(inv *Invocation) error) error {
	if !h.started.Load() || h.closed.Load() {
		return ErrNotStarted
	}

	select {
	case h.exec <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-h.exec }()

	if h.closed.Load() {
		return ErrNotStarted
	}
	return fn(newInvocation(h))
}

// RequireAuth 以独立调用执行一次授权
func (h *Host) RequireAuth(ctx context.Context, id types.ContractID, entry AuthEntry) error {
	return h.Invoke(ctx, func(inv *Invocation) error {
		return inv.RequireAuth(id, entry)
	})
}

// AdvanceLedger 前进 n 个账本
func (h *Host) AdvanceLedger(ctx context.Context, n uint32) (uint32, error) {
	var seq uint32
	err := h.Invoke(ctx, func(_ *Invocation) error {
		var err error
		seq, err = h.ledger.Advance(n)
		return err
	})
	if err == nil && h.seqEmitter != nil {
		_ = h.seqEmitter.Emit(types.EvtLedgerAdvanced{
			BaseEvent: types.NewBaseEvent(types.EventTypeLedgerAdvanced),
			Ledger:    seq,
		})
	}
	return seq, err
}

// emitAuthorization 发布授权判定事件
func (h *Host) emitAuthorization(id types.ContractID, entry AuthEntry, seq uint32, err error) {
	if h.authEmitter == nil {
		return
	}
	evt := types.EvtAuthorization{
		BaseEvent: types.NewBaseEvent(types.EventTypeAuthorization),
		Contract:  id,
		Nonce:     entry.Nonce,
		Ledger:    seq,
		Accepted:  err == nil,
	}
	if signer, decodeErr := types.IdentityFromBytes(entry.Claim.Address); decodeErr == nil {
		evt.Signer = signer
	}
	if err != nil {
		evt.Reason = err.Error()
	}
	_ = h.authEmitter.Emit(evt)
}

// ============================================================================
//                              租约报告
// ============================================================================

// LeaseReport 合约相关租约汇总
type LeaseReport struct {
	Contract types.ContractID `json:"contract"`
	Ledger   uint32           `json:"ledger"`
	MaxTTL   uint32           `json:"max_ttl"`

	// Entry 指定存储条目的租约，条目不存在时为 nil
	Entry *Lease `json:"entry,omitempty"`

	Deployment Lease `json:"deployment"`
	Code       Lease `json:"code"`
	Instance   Lease `json:"instance"`
}

// LeaseReport 返回合约的租约汇总
//
// key 非空时附带该存储条目的租约。
func (h *Host) LeaseReport(id types.ContractID, key []byte) (*LeaseReport, error) {
	deployment, code, instance, err := h.deployer.Leases(id)
	if err != nil {
		return nil, err
	}

	report := &LeaseReport{
		Contract:   id,
		Ledger:     h.ledger.Current(),
		MaxTTL:     h.config.MaxTTL(),
		Deployment: deployment,
		Code:       code,
		Instance:   instance,
	}

	if len(key) > 0 {
		lease, err := h.Storage(id).Lease(key)
		switch {
		case err == nil:
			report.Entry = &lease
		case !errors.Is(err, ErrEntryNotFound):
			return nil, err
		}
	}
	return report, nil
}
