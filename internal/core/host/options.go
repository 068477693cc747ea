package host

import (
	"github.com/dep2p/go-ethaccount/internal/core/storage/engine"
	"github.com/dep2p/go-ethaccount/pkg/interfaces"
)

// Option Host 构造选项类型
type Option func(*Host) error

// WithEngine 设置存储引擎
func WithEngine(eng engine.InternalEngine) Option {
	return func(h *Host) error {
		h.engine = eng
		return nil
	}
}

// WithConfig 设置配置
func WithConfig(cfg *Config) Option {
	return func(h *Host) error {
		if cfg == nil {
			return nil
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		h.config = cfg
		return nil
	}
}

// WithHasher 替换哈希实现
func WithHasher(hasher interfaces.Hasher) Option {
	return func(h *Host) error {
		if hasher != nil {
			h.hasher = hasher
		}
		return nil
	}
}

// WithRecoverer 替换签名恢复实现
func WithRecoverer(r interfaces.Recoverer) Option {
	return func(h *Host) error {
		if r != nil {
			h.recoverer = r
		}
		return nil
	}
}

// WithEventBus 设置事件总线，授权判定与账本前进会发布事件
func WithEventBus(bus interfaces.EventBus) Option {
	return func(h *Host) error {
		h.eventbus = bus
		return nil
	}
}
