// Package engine 定义存储引擎的内部接口
//
// 本包扩展 pkg/interfaces 中的公共 Engine 接口，
// 提供事务、前缀迭代等宿主状态需要的能力。
//
// # 接口层次
//
//	pkg/interfaces.Engine     - 公共基础接口
//	    ↓
//	engine.InternalEngine     - 内部扩展接口
//
// # 线程安全
//
// 所有接口实现必须保证线程安全。
package engine

import (
	"github.com/dep2p/go-ethaccount/pkg/interfaces"
)

// InternalEngine 内部扩展接口
type InternalEngine interface {
	interfaces.Engine

	// Update 在读写事务中执行 fn
	//
	// fn 返回 nil 时原子提交，返回错误时丢弃全部修改。
	// 合约条目的值和租约必须一起写入，依赖这个原子性。
	Update(fn func(txn Transaction) error) error

	// View 在只读事务中执行 fn
	View(fn func(txn Transaction) error) error

	// NewPrefixIterator 创建前缀迭代器
	//
	// 调用者负责在使用后调用 Close()。
	NewPrefixIterator(prefix []byte) Iterator

	// Start 启动存储引擎（后台 GC 等）
	Start() error

	// Sync 同步数据到磁盘
	Sync() error

	// Stats 获取引擎统计信息
	Stats() *interfaces.EngineStats
}

// Transaction 事务接口
//
// 只在 Update / View 回调内有效，回调返回后不能再使用。
type Transaction interface {
	// Get 读取值，键不存在返回 ErrNotFound
	Get(key []byte) ([]byte, error)

	// Set 设置值（只读事务返回 ErrReadOnly）
	Set(key, value []byte) error

	// Delete 删除键（只读事务返回 ErrReadOnly）
	Delete(key []byte) error
}

// Iterator 迭代器接口
//
// 使用模式:
//
//	iter := eng.NewPrefixIterator(prefix)
//	defer iter.Close()
//
//	for iter.First(); iter.Valid(); iter.Next() {
//	    key := iter.Key()
//	    value := iter.Value()
//	}
//
//	if err := iter.Error(); err != nil {
//	    return err
//	}
type Iterator interface {
	// First 移动到第一个键值对
	First() bool

	// Next 移动到下一个键值对
	Next() bool

	// Valid 检查迭代器是否指向有效位置
	Valid() bool

	// Key 返回当前键的副本
	Key() []byte

	// Value 返回当前值的副本
	Value() []byte

	// Close 关闭迭代器
	Close()

	// Error 返回迭代过程中的错误
	Error() error
}
