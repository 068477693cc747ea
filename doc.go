// Package ethaccount 以以太坊地址为签名者的自定义账户
//
// 账户合约保存一个 20 字节以太坊地址作为凭据。授权请求携带
// 钱包 personal_sign 产生的 65 字节可恢复签名，账户从签名恢复公钥、
// 推导地址，并与声明地址和已存凭据比对。
//
// # 快速开始
//
//	node, err := ethaccount.New(ctx, ethaccount.WithDataDir("./data"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer node.Close()
//
//	// 1. 绑定签名者
//	key, _ := crypto.GenerateKey()
//	_ = node.Init(ctx, key.Identity())
//
//	// 2. 构造授权请求并签名
//	entry, _ := node.NewAuthEntry(ops)
//	_ = ethaccount.SignEntry(key, node.NetworkPassphrase(), &entry)
//
//	// 3. 授权
//	err = node.Authorize(ctx, entry)
//
// # 租约
//
// 凭据、部署记录、代码和合约实例各有独立租约（以账本计）。
// Init 与 ExtendTTL 把四类租约都补满到 MaxTTL。
//
// # 文件组织
//
//   - ethaccount.go: 版本信息
//   - node.go: Node 门面
//   - options.go: 构造选项
//   - fx.go: 模块装配
//   - errors.go: 公共错误
package ethaccount
