package storage

import (
	"time"

	"github.com/dep2p/go-ethaccount/config"
	"github.com/dep2p/go-ethaccount/internal/core/storage/engine"
)

// Config Storage 模块配置
type Config struct {
	// Path 存储路径（BadgerDB 数据库目录，必需）
	Path string

	// SyncWrites 是否同步写入
	SyncWrites bool

	// GCInterval 垃圾回收间隔，0 表示禁用
	GCInterval time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Path:       "./data/ethaccount.db",
		SyncWrites: true,
		GCInterval: 10 * time.Minute,
	}
}

// ConfigFromUnified 从统一配置创建 Storage 配置
func ConfigFromUnified(cfg *config.Config) Config {
	storageCfg := DefaultConfig()
	if cfg == nil {
		return storageCfg
	}

	if cfg.Storage.DataDir != "" {
		storageCfg.Path = cfg.Storage.DBPath()
	}
	storageCfg.SyncWrites = cfg.Storage.SyncWrites
	storageCfg.GCInterval = cfg.Storage.GCInterval.Duration()

	return storageCfg
}

// ToEngineConfig 转换为引擎配置
func (c *Config) ToEngineConfig() *engine.Config {
	engineCfg := engine.DefaultConfig(c.Path)
	engineCfg.SyncWrites = c.SyncWrites
	engineCfg.Badger.GCInterval = c.GCInterval
	return engineCfg
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.Path == "" {
		return ErrInvalidConfig
	}
	if c.GCInterval != 0 && c.GCInterval < time.Minute {
		c.GCInterval = time.Minute
	}
	return nil
}
