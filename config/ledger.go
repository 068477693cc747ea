package config

import (
	"errors"
)

// LedgerConfig 账本配置
//
// 描述宿主的租约（TTL）规则，单位均为账本序号：
//   - MaxEntryTTL: 条目存活的上限（含当前账本），可延长到的最大剩余 TTL 为 MaxEntryTTL-1
//   - MinPersistentTTL: 新写入持久化条目的初始 TTL
//   - MinInstanceTTL: 新部署合约实例、代码的初始 TTL
//   - SignatureValidity: 授权签名默认有效的账本数
type LedgerConfig struct {
	// NetworkPassphrase 网络口令，参与授权负载哈希
	NetworkPassphrase string `json:"network_passphrase"`

	// MaxEntryTTL 条目最大 TTL
	MaxEntryTTL uint32 `json:"max_entry_ttl"`

	// MinPersistentTTL 持久化条目最小 TTL
	MinPersistentTTL uint32 `json:"min_persistent_ttl"`

	// MinInstanceTTL 实例条目最小 TTL
	MinInstanceTTL uint32 `json:"min_instance_ttl"`

	// SignatureValidity 签名有效账本数
	SignatureValidity uint32 `json:"signature_validity"`
}

// DefaultLedgerConfig 返回默认账本配置
func DefaultLedgerConfig() LedgerConfig {
	return LedgerConfig{
		NetworkPassphrase: "Test SDF Network ; September 2015", // 测试网口令
		MaxEntryTTL:       3110400,                            // 约 180 天（5 秒/账本）
		MinPersistentTTL:  120960,                             // 约 7 天
		MinInstanceTTL:    4096,
		SignatureValidity: 100,
	}
}

// Validate 验证账本配置
func (c LedgerConfig) Validate() error {
	if c.NetworkPassphrase == "" {
		return errors.New("ledger: network_passphrase cannot be empty")
	}
	if c.MaxEntryTTL < 2 {
		return errors.New("ledger: max_entry_ttl must be at least 2")
	}
	if c.MinPersistentTTL == 0 || c.MinPersistentTTL >= c.MaxEntryTTL {
		return errors.New("ledger: min_persistent_ttl must be in (0, max_entry_ttl)")
	}
	if c.MinInstanceTTL == 0 || c.MinInstanceTTL >= c.MaxEntryTTL {
		return errors.New("ledger: min_instance_ttl must be in (0, max_entry_ttl)")
	}
	if c.SignatureValidity == 0 {
		return errors.New("ledger: signature_validity must be positive")
	}
	return nil
}

// MaxTTL 返回可延长到的最大剩余 TTL
func (c LedgerConfig) MaxTTL() uint32 {
	return c.MaxEntryTTL - 1
}

// WithNetworkPassphrase 设置网络口令
func (c LedgerConfig) WithNetworkPassphrase(passphrase string) LedgerConfig {
	c.NetworkPassphrase = passphrase
	return c
}

// WithMaxEntryTTL 设置最大 TTL
func (c LedgerConfig) WithMaxEntryTTL(ttl uint32) LedgerConfig {
	c.MaxEntryTTL = ttl
	return c
}

// WithMinPersistentTTL 设置持久化条目最小 TTL
func (c LedgerConfig) WithMinPersistentTTL(ttl uint32) LedgerConfig {
	c.MinPersistentTTL = ttl
	return c
}

// WithMinInstanceTTL 设置实例条目最小 TTL
func (c LedgerConfig) WithMinInstanceTTL(ttl uint32) LedgerConfig {
	c.MinInstanceTTL = ttl
	return c
}

// WithSignatureValidity 设置签名有效账本数
func (c LedgerConfig) WithSignatureValidity(ledgers uint32) LedgerConfig {
	c.SignatureValidity = ledgers
	return c
}
