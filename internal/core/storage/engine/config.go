package engine

import (
	"os"
	"path/filepath"
	"time"
)

// Config 存储引擎配置
//
// 测试代码应使用 t.TempDir() 创建临时目录。
type Config struct {
	// Path 数据目录路径（必需）
	Path string

	// SyncWrites 是否同步写入
	// 宿主状态（凭证、租约、nonce）要求落盘后才算成功，默认开启
	SyncWrites bool

	// ReadOnly 是否只读模式
	ReadOnly bool

	// Badger 特定选项
	Badger BadgerOptions
}

// BadgerOptions BadgerDB 特定选项
type BadgerOptions struct {
	// MemTableSize 内存表大小（字节），默认 16MB
	MemTableSize int64

	// ValueLogFileSize 值日志文件大小（字节），默认 64MB
	ValueLogFileSize int64

	// BlockCacheSize 块缓存大小（字节），默认 32MB
	BlockCacheSize int64

	// NumCompactors 压缩器数量，默认 2
	NumCompactors int

	// ZSTDCompressionLevel ZSTD 压缩级别，0 表示禁用
	ZSTDCompressionLevel int

	// GCInterval 值日志垃圾回收间隔，0 表示不启动后台 GC
	GCInterval time.Duration

	// GCDiscardRatio 垃圾回收丢弃比例
	GCDiscardRatio float64
}

// DefaultConfig 返回默认配置
func DefaultConfig(path string) *Config {
	return &Config{
		Path:       path,
		SyncWrites: true,
		ReadOnly:   false,
		Badger:     DefaultBadgerOptions(),
	}
}

// DefaultBadgerOptions 返回默认 BadgerDB 选项
//
// 账户状态只有少量小条目，选项比通用默认值小得多。
func DefaultBadgerOptions() BadgerOptions {
	return BadgerOptions{
		MemTableSize:         16 << 20,
		ValueLogFileSize:     64 << 20,
		BlockCacheSize:       32 << 20,
		NumCompactors:        2,
		ZSTDCompressionLevel: 1,
		GCInterval:           10 * time.Minute,
		GCDiscardRatio:       0.5,
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.Path == "" {
		return ErrInvalidConfig
	}

	if c.Badger.MemTableSize < 1<<20 { // 最小 1MB
		return ErrInvalidConfig
	}

	if c.Badger.ValueLogFileSize < 1<<20 { // 最小 1MB
		return ErrInvalidConfig
	}

	if c.Badger.NumCompactors < 2 { // badger 要求至少 2 个
		return ErrInvalidConfig
	}

	return nil
}

// EnsureDir 确保数据目录存在
func (c *Config) EnsureDir() error {
	absPath, err := filepath.Abs(c.Path)
	if err != nil {
		return err
	}
	c.Path = absPath

	return os.MkdirAll(c.Path, 0755)
}

// WithSyncWrites 设置同步写入
func (c *Config) WithSyncWrites(sync bool) *Config {
	c.SyncWrites = sync
	return c
}

// WithReadOnly 设置只读模式
func (c *Config) WithReadOnly(readOnly bool) *Config {
	c.ReadOnly = readOnly
	return c
}
