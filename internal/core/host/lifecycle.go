package host

import (
	"context"
	"errors"
)

// Start 启动 Host
func (h *Host) Start(_ context.Context) error {
	if h.closed.Load() {
		return errors.New("host is closed")
	}
	if !h.started.CompareAndSwap(false, true) {
		return errors.New("host already started")
	}

	logger.Info("Host 启动成功",
		"ledger", h.ledger.Current(),
		"maxTTL", h.config.MaxTTL())
	return nil
}

// Close 关闭 Host
//
// 等待正在执行的调用结束；存储引擎由 storage 模块关闭。
func (h *Host) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return nil
	}
	h.exec <- struct{}{}
	<-h.exec

	if h.authEmitter != nil {
		_ = h.authEmitter.Close()
	}
	if h.seqEmitter != nil {
		_ = h.seqEmitter.Close()
	}
	logger.Info("Host 已关闭", "ledger", h.ledger.Current())
	return nil
}

// Started 返回 Host 是否已启动
func (h *Host) Started() bool {
	return h.started.Load() && !h.closed.Load()
}
