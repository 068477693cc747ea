package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// StorageConfig 存储配置
//
// 所有宿主状态（账本序号、合约存储、租约）统一存放在一个 BadgerDB 中，
// 通过 Key 前缀隔离。
//
// 数据目录结构：
//
//	${DataDir}/
//	├── ethaccount.db/      # BadgerDB 主数据库
//	├── keys/               # 加密密钥文件
//	└── logs/               # 日志目录（可选）
type StorageConfig struct {
	// DataDir 数据目录路径
	// 默认值: "./data"
	DataDir string `json:"data_dir"`

	// SyncWrites 每次提交是否 fsync
	SyncWrites bool `json:"sync_writes"`

	// GCInterval BadgerDB 值日志 GC 间隔，0 表示禁用
	GCInterval Duration `json:"gc_interval"`
}

// DefaultStorageConfig 返回默认的存储配置
func DefaultStorageConfig() StorageConfig {
	return StorageConfig{
		DataDir:    "./data",
		SyncWrites: true,
		GCInterval: Duration(10 * time.Minute),
	}
}

// Validate 验证存储配置的有效性
func (c *StorageConfig) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("storage: data_dir cannot be empty")
	}
	if c.GCInterval < 0 {
		return fmt.Errorf("storage: gc_interval must not be negative")
	}
	return nil
}

// WithDataDir 设置数据目录
func (c StorageConfig) WithDataDir(dir string) StorageConfig {
	c.DataDir = dir
	return c
}

// WithSyncWrites 设置是否同步写入
func (c StorageConfig) WithSyncWrites(sync bool) StorageConfig {
	c.SyncWrites = sync
	return c
}

// DBPath 返回 BadgerDB 数据库路径
func (c *StorageConfig) DBPath() string {
	return filepath.Join(c.DataDir, "ethaccount.db")
}

// KeysPath 返回密钥目录路径
func (c *StorageConfig) KeysPath() string {
	return filepath.Join(c.DataDir, "keys")
}

// LogPath 返回日志目录路径
func (c *StorageConfig) LogPath() string {
	return filepath.Join(c.DataDir, "logs")
}
