package badger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dep2p/go-ethaccount/internal/core/storage/engine"
	"github.com/dep2p/go-ethaccount/pkg/interfaces"
	"github.com/dep2p/go-ethaccount/pkg/lib/log"
	"github.com/dgraph-io/badger/v4"
)

// logger 是 badger 存储引擎的日志记录器
var logger = log.Logger("storage/badger")

// Engine BadgerDB 存储引擎
type Engine struct {
	db     *badger.DB
	config *engine.Config
	closed atomic.Bool

	numReads  atomic.Int64
	numWrites atomic.Int64

	// 后台 GC
	gcCtx    context.Context
	gcCancel context.CancelFunc
	gcWg     sync.WaitGroup
}

// New 创建新的 BadgerDB 存储引擎
func New(cfg *engine.Config) (*Engine, error) {
	if cfg == nil {
		return nil, engine.ErrInvalidConfig
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.EnsureDir(); err != nil {
		return nil, err
	}

	db, err := badger.Open(buildBadgerOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", cfg.Path, err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Engine{
		db:       db,
		config:   cfg,
		gcCtx:    ctx,
		gcCancel: cancel,
	}, nil
}

// buildBadgerOptions 根据配置构建 BadgerDB 选项
func buildBadgerOptions(cfg *engine.Config) badger.Options {
	b := cfg.Badger
	return badger.DefaultOptions(cfg.Path).
		WithSyncWrites(cfg.SyncWrites).
		WithReadOnly(cfg.ReadOnly).
		WithMemTableSize(b.MemTableSize).
		WithValueLogFileSize(b.ValueLogFileSize).
		WithBlockCacheSize(b.BlockCacheSize).
		WithNumCompactors(b.NumCompactors).
		WithZSTDCompressionLevel(b.ZSTDCompressionLevel).
		WithLogger(badgerLogger{})
}

// badgerLogger 将 badger 日志转发到组件日志，Info/Debug 丢弃
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	logger.Error(fmt.Sprintf(format, args...))
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	logger.Warn(fmt.Sprintf(format, args...))
}

func (badgerLogger) Infof(string, ...interface{}) {}

func (badgerLogger) Debugf(string, ...interface{}) {}

// Start 启动存储引擎
func (e *Engine) Start() error {
	if e.closed.Load() {
		return engine.ErrClosed
	}

	if e.config.Badger.GCInterval > 0 && !e.config.ReadOnly {
		e.startGC()
	}

	return nil
}

// startGC 启动垃圾回收后台任务
func (e *Engine) startGC() {
	e.gcWg.Add(1)
	go func() {
		defer e.gcWg.Done()

		ticker := time.NewTicker(e.config.Badger.GCInterval)
		defer ticker.Stop()

		for {
			select {
			case <-e.gcCtx.Done():
				return
			case <-ticker.C:
				e.runGC()
			}
		}
	}()
}

// runGC 执行一次垃圾回收，直到没有可回收的空间
func (e *Engine) runGC() {
	if e.closed.Load() {
		return
	}

	for {
		if err := e.db.RunValueLogGC(e.config.Badger.GCDiscardRatio); err != nil {
			break
		}
	}
}

// --- 公共接口实现 (interfaces.Engine) ---

// Get 获取指定键的值
func (e *Engine) Get(key []byte) ([]byte, error) {
	var value []byte
	err := e.View(func(txn engine.Transaction) error {
		v, err := txn.Get(key)
		value = v
		return err
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Put 设置键值对
func (e *Engine) Put(key, value []byte) error {
	return e.Update(func(txn engine.Transaction) error {
		return txn.Set(key, value)
	})
}

// Delete 删除指定键
func (e *Engine) Delete(key []byte) error {
	return e.Update(func(txn engine.Transaction) error {
		return txn.Delete(key)
	})
}

// Has 检查键是否存在
func (e *Engine) Has(key []byte) (bool, error) {
	_, err := e.Get(key)
	if err == nil {
		return true, nil
	}
	if engine.IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// Close 关闭存储引擎
func (e *Engine) Close() error {
	if e.closed.Swap(true) {
		return nil
	}

	e.gcCancel()
	e.gcWg.Wait()

	return e.db.Close()
}

// --- 内部扩展接口实现 (engine.InternalEngine) ---

// Update 在读写事务中执行 fn
func (e *Engine) Update(fn func(txn engine.Transaction) error) error {
	if e.closed.Load() {
		return engine.ErrClosed
	}
	if e.config.ReadOnly {
		return engine.ErrReadOnly
	}

	err := e.db.Update(func(txn *badger.Txn) error {
		return fn(&Transaction{txn: txn, writable: true})
	})
	if err == nil {
		e.numWrites.Add(1)
	}
	return convertError(err)
}

// View 在只读事务中执行 fn
func (e *Engine) View(fn func(txn engine.Transaction) error) error {
	if e.closed.Load() {
		return engine.ErrClosed
	}

	err := e.db.View(func(txn *badger.Txn) error {
		return fn(&Transaction{txn: txn})
	})
	e.numReads.Add(1)
	return convertError(err)
}

// NewPrefixIterator 创建前缀迭代器
func (e *Engine) NewPrefixIterator(prefix []byte) engine.Iterator {
	txn := e.db.NewTransaction(false)

	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix

	return &Iterator{
		txn:    txn,
		iter:   txn.NewIterator(opts),
		prefix: prefix,
	}
}

// Sync 同步数据到磁盘
func (e *Engine) Sync() error {
	if e.closed.Load() {
		return engine.ErrClosed
	}
	return e.db.Sync()
}

// Stats 获取引擎统计信息
func (e *Engine) Stats() *interfaces.EngineStats {
	lsm, vlog := e.db.Size()
	return &interfaces.EngineStats{
		KeyCount: e.countKeys(),
		DiskSize: lsm + vlog,
		Reads:    e.numReads.Load(),
		Writes:   e.numWrites.Load(),
	}
}

// countKeys 统计键数量
func (e *Engine) countKeys() int64 {
	var count int64
	err := e.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		logger.Debug("统计键数量失败", "error", err)
		return 0
	}
	return count
}

// convertError 转换 BadgerDB 错误到引擎错误
func convertError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return engine.ErrNotFound
	case errors.Is(err, badger.ErrEmptyKey):
		return engine.ErrEmptyKey
	case errors.Is(err, badger.ErrTxnTooBig):
		return engine.ErrTransactionTooLarge
	case errors.Is(err, badger.ErrConflict):
		return engine.ErrTransactionConflict
	case errors.Is(err, badger.ErrReadOnlyTxn):
		return engine.ErrReadOnly
	default:
		return err
	}
}

// 编译时检查接口实现
var _ engine.InternalEngine = (*Engine)(nil)
