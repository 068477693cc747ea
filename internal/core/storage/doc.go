// Package storage 提供统一的持久化存储服务
//
// Storage 模块基于 BadgerDB，为宿主提供键值存储后端：
//
//	┌─────────────────────────────────────────────────────────────┐
//	│         internal/core/host (账本 / 合约存储 / 租约)          │
//	└─────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────┐
//	│  kv.Store（前缀隔离、事务视图）                              │
//	│  engine/badger（BadgerDB 实现）                              │
//	└─────────────────────────────────────────────────────────────┘
//
// 使用 Fx 依赖注入：
//
//	app := fx.New(
//	    fx.Supply(cfg),
//	    storage.Module(),
//	)
//
// 手动创建：
//
//	eng, err := storage.New("/data/ethaccount.db")
//	if err != nil {
//	    return err
//	}
//	defer eng.Close()
package storage
