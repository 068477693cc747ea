// Package badger 实现 BadgerDB 存储引擎
//
// 宿主的账本序号、合约条目、租约和 nonce 都存放在同一个 BadgerDB 实例中，
// 通过 kv 层的键前缀隔离。
//
// # 使用示例
//
//	eng, err := badger.New(engine.DefaultConfig("/data/ethaccount.db"))
//	if err != nil {
//	    return err
//	}
//	defer eng.Close()
//
//	err = eng.Update(func(txn engine.Transaction) error {
//	    if err := txn.Set([]byte("a"), []byte("1")); err != nil {
//	        return err
//	    }
//	    return txn.Set([]byte("b"), []byte("2"))
//	})
package badger
