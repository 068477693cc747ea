package ethaccount

import (
	"fmt"

	"go.uber.org/fx"

	"github.com/dep2p/go-ethaccount/config"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// 完整配置（WithConfig / WithConfigFile）
	config *config.Config

	// 覆盖项
	dataDir string
	logFile string

	// 部署 salt，决定合约地址
	salt []byte

	// 用户自定义 Fx 选项
	fxOptions []fx.Option
}

// newOptions 创建默认选项
func newOptions() *options {
	return &options{salt: []byte(DefaultSalt)}
}

// toConfig 合并为最终配置
func (o *options) toConfig() *config.Config {
	var cfg *config.Config
	if o.config != nil {
		cfg = config.CloneConfig(o.config)
	} else {
		cfg = config.NewConfig()
	}

	if o.dataDir != "" {
		cfg.Storage = cfg.Storage.WithDataDir(o.dataDir)
	}
	if o.logFile != "" {
		cfg.Log = cfg.Log.WithFile(o.logFile)
	}
	return cfg
}

// WithConfig 使用完整配置
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return fmt.Errorf("nil config")
		}
		o.config = cfg
		return nil
	}
}

// WithConfigFile 从 JSON 文件加载配置
func WithConfigFile(path string) Option {
	return func(o *options) error {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		o.config = cfg
		return nil
	}
}

// WithDataDir 设置数据目录
func WithDataDir(dir string) Option {
	return func(o *options) error {
		o.dataDir = dir
		return nil
	}
}

// WithLogFile 将日志写入文件
func WithLogFile(path string) Option {
	return func(o *options) error {
		o.logFile = path
		return nil
	}
}

// WithSalt 设置部署 salt
//
// 同一数据目录下不同 salt 对应不同的账户合约。
func WithSalt(salt string) Option {
	return func(o *options) error {
		if salt == "" {
			return ErrEmptySalt
		}
		o.salt = []byte(salt)
		return nil
	}
}

// WithFxOption 追加 Fx 选项
func WithFxOption(opts ...fx.Option) Option {
	return func(o *options) error {
		o.fxOptions = append(o.fxOptions, opts...)
		return nil
	}
}
