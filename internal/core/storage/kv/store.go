package kv

import (
	"encoding/binary"

	"github.com/dep2p/go-ethaccount/internal/core/storage/engine"
)

// Store 带前缀隔离的 KV 存储
//
// Store 封装底层存储引擎，为所有键自动添加前缀。
type Store struct {
	engine engine.InternalEngine
	prefix []byte
}

// New 创建新的 KVStore
//
// 参数:
//   - eng: 底层存储引擎
//   - prefix: 键前缀（所有操作会自动添加此前缀）
func New(eng engine.InternalEngine, prefix []byte) *Store {
	return &Store{
		engine: eng,
		prefix: prefix,
	}
}

// Prefix 返回前缀
func (s *Store) Prefix() []byte {
	return s.prefix
}

// Sub 返回追加子前缀的 Store，共享同一引擎
func (s *Store) Sub(prefix []byte) *Store {
	return New(s.engine, s.prefixKey(prefix))
}

// prefixKey 为键添加前缀
func (s *Store) prefixKey(key []byte) []byte {
	if len(s.prefix) == 0 {
		return key
	}
	prefixed := make([]byte, len(s.prefix)+len(key))
	copy(prefixed, s.prefix)
	copy(prefixed[len(s.prefix):], key)
	return prefixed
}

// stripPrefix 从键中移除前缀
func (s *Store) stripPrefix(key []byte) []byte {
	if len(s.prefix) == 0 || len(key) < len(s.prefix) {
		return key
	}
	return key[len(s.prefix):]
}

// ============= 基础操作 =============

// Get 获取指定键的值
func (s *Store) Get(key []byte) ([]byte, error) {
	return s.engine.Get(s.prefixKey(key))
}

// Put 设置键值对
func (s *Store) Put(key, value []byte) error {
	return s.engine.Put(s.prefixKey(key), value)
}

// Delete 删除指定键
func (s *Store) Delete(key []byte) error {
	return s.engine.Delete(s.prefixKey(key))
}

// Has 检查键是否存在
func (s *Store) Has(key []byte) (bool, error) {
	return s.engine.Has(s.prefixKey(key))
}

// ============= uint64 值 =============

// GetUint64 获取 uint64 值
func (s *Store) GetUint64(key []byte) (uint64, error) {
	data, err := s.Get(key)
	if err != nil {
		return 0, err
	}
	return decodeUint64(data)
}

// PutUint64 存储 uint64 值
func (s *Store) PutUint64(key []byte, value uint64) error {
	return s.Put(key, encodeUint64(value))
}

// ============= 事务 =============

// Update 在读写事务中执行 fn，Txn 上的键自动添加前缀
func (s *Store) Update(fn func(tx *Txn) error) error {
	return s.engine.Update(func(txn engine.Transaction) error {
		return fn(&Txn{store: s, txn: txn})
	})
}

// View 在只读事务中执行 fn
func (s *Store) View(fn func(tx *Txn) error) error {
	return s.engine.View(func(txn engine.Transaction) error {
		return fn(&Txn{store: s, txn: txn})
	})
}

// Txn 带前缀的事务视图
type Txn struct {
	store *Store
	txn   engine.Transaction
}

// Get 读取值
func (t *Txn) Get(key []byte) ([]byte, error) {
	return t.txn.Get(t.store.prefixKey(key))
}

// Set 写入值
func (t *Txn) Set(key, value []byte) error {
	return t.txn.Set(t.store.prefixKey(key), value)
}

// Delete 删除键
func (t *Txn) Delete(key []byte) error {
	return t.txn.Delete(t.store.prefixKey(key))
}

// GetUint64 读取 uint64 值
func (t *Txn) GetUint64(key []byte) (uint64, error) {
	data, err := t.Get(key)
	if err != nil {
		return 0, err
	}
	return decodeUint64(data)
}

// SetUint64 写入 uint64 值
func (t *Txn) SetUint64(key []byte, value uint64) error {
	return t.Set(key, encodeUint64(value))
}

// ============= 前缀迭代 =============

// PrefixScan 扫描指定子前缀的所有键值对
//
// 回调函数返回 false 时停止扫描。
// 注意：返回的 key 已去除 Store 的前缀，但保留 subPrefix。
func (s *Store) PrefixScan(subPrefix []byte, fn func(key, value []byte) bool) error {
	iter := s.engine.NewPrefixIterator(s.prefixKey(subPrefix))
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		if !fn(s.stripPrefix(iter.Key()), iter.Value()) {
			break
		}
	}

	return iter.Error()
}

func encodeUint64(v uint64) []byte {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, v)
	return data
}

func decodeUint64(data []byte) (uint64, error) {
	if len(data) != 8 {
		return 0, engine.ErrCorrupted
	}
	return binary.BigEndian.Uint64(data), nil
}
