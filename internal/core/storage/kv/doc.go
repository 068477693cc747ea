// Package kv 提供带前缀隔离的 KV 存储抽象层
//
// # 键空间设计
//
//	l/   - 账本状态（当前序号）
//	c/   - 合约条目（按合约地址分区，值带 liveUntil 头）
//	d/   - 部署记录、代码、实例租约
//	n/   - 已使用的授权 nonce
//
// # 使用示例
//
//	ledger := kv.New(eng, []byte("l/"))
//	seq, err := ledger.GetUint64([]byte("seq"))
package kv
