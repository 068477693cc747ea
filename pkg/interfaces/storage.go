// Package interfaces - Storage 存储引擎接口
//
// 本文件定义键值存储引擎的公共接口。宿主的合约存储、账本序号和
// 租约记录都落在这个引擎上，默认实现为 BadgerDB。
package interfaces

// Engine 存储引擎基础接口
//
// 线程安全：实现必须保证所有方法的线程安全性。
//
// 示例:
//
//	eng, err := badger.New(engine.DefaultConfig("/data/ethaccount.db"))
//	if err != nil {
//	    return err
//	}
//	defer eng.Close()
//
//	if err := eng.Put([]byte("key"), []byte("value")); err != nil {
//	    return err
//	}
type Engine interface {
	// Get 获取指定键的值
	//
	// 返回:
	//   - []byte: 值的副本（调用者可以安全修改）
	//   - error: ErrNotFound 如果键不存在，其他错误表示存储故障
	Get(key []byte) ([]byte, error)

	// Put 设置键值对，已存在则覆盖
	Put(key, value []byte) error

	// Delete 删除指定键（幂等）
	Delete(key []byte) error

	// Has 检查键是否存在
	Has(key []byte) (bool, error)

	// Close 关闭存储引擎，多次调用是安全的
	Close() error
}

// EngineStats 引擎统计信息
type EngineStats struct {
	// KeyCount 当前存储的键数量
	KeyCount int64 `json:"key_count"`

	// DiskSize 磁盘占用大小（字节）
	DiskSize int64 `json:"disk_size"`

	// Reads 读取次数
	Reads int64 `json:"reads"`

	// Writes 写入次数
	Writes int64 `json:"writes"`
}
