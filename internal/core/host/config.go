package host

import (
	"errors"

	"github.com/dep2p/go-ethaccount/config"
)

// Config Host 配置
type Config struct {
	NetworkPassphrase string // 网络口令，参与授权负载哈希

	MaxEntryTTL      uint32 // 条目最大 TTL（含当前账本）
	MinPersistentTTL uint32 // 新持久化条目 / 部署记录 / 代码的初始 TTL
	MinInstanceTTL   uint32 // 新合约实例的初始 TTL

	SignatureValidity uint32 // 客户端默认签名有效账本数
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return ConfigFromUnified(nil)
}

// ConfigFromUnified 从统一配置创建 Host 配置
func ConfigFromUnified(cfg *config.Config) *Config {
	ledger := config.DefaultLedgerConfig()
	if cfg != nil {
		ledger = cfg.Ledger
	}
	return &Config{
		NetworkPassphrase: ledger.NetworkPassphrase,
		MaxEntryTTL:       ledger.MaxEntryTTL,
		MinPersistentTTL:  ledger.MinPersistentTTL,
		MinInstanceTTL:    ledger.MinInstanceTTL,
		SignatureValidity: ledger.SignatureValidity,
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.NetworkPassphrase == "" {
		return errors.New("network passphrase is required")
	}
	if c.MaxEntryTTL < 2 {
		return errors.New("max entry ttl must be at least 2")
	}
	if c.MinPersistentTTL == 0 || c.MinPersistentTTL >= c.MaxEntryTTL {
		return errors.New("min persistent ttl out of range")
	}
	if c.MinInstanceTTL == 0 || c.MinInstanceTTL >= c.MaxEntryTTL {
		return errors.New("min instance ttl out of range")
	}
	return nil
}

// MaxTTL 返回 extendTo 的上限
func (c *Config) MaxTTL() uint32 {
	return c.MaxEntryTTL - 1
}
