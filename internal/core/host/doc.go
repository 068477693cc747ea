// Package host 实现账户合约运行所需的宿主环境
//
// host 作为 Core Layer 的聚合点，把账本、合约存储、部署租约和授权调度
// 组合成账户合约可见的 interfaces.Env。
//
// # Host 架构
//
// Host 采用门面（Facade）模式，组合以下组件：
//   - Ledger: 当前账本序号（持久化）
//   - ContractStorage: 每个合约的持久化条目，带租约（TTL）
//   - Deployer: 部署记录、代码、合约实例的租约
//   - Invocation: 一次串行执行的调用帧，负责授权栈与 nonce
//
// # 租约语义
//
// 条目记录 liveUntil（最后一个可访问的账本）。剩余 TTL = liveUntil - 当前账本。
// ExtendTTL(threshold, extendTo) 仅当剩余 TTL < threshold 时把 liveUntil
// 推到 当前账本 + extendTo，不缩短，extendTo 不超过 MaxTTL。
// 过期条目访问返回 ErrEntryArchived，可通过 Restore 恢复。
//
// # 使用示例
//
//	h, err := host.New(host.WithEngine(eng), host.WithConfig(cfg))
//	codeHash := h.RegisterCode("ethaccount", account.Factory)
//	id, err := h.Deploy("ethaccount", salt)
//
//	err = h.Invoke(ctx, func(inv *host.Invocation) error {
//	    return account.New(inv.Env(id)).Init(signer)
//	})
//
//	err = h.RequireAuth(ctx, id, host.AuthEntry{...})
//
// # 委托模式
//
// RequireAuth() 委托链：
//
//	Host.RequireAuth()
//	  └─> Invocation.RequireAuth()
//	        ├─> 检查签名过期与 nonce
//	        ├─> 压入授权栈（拒绝重入）
//	        ├─> AuthPayload()                 // sha256 授权负载
//	        └─> CustomAccount.CheckAuth()     // 账户策略
package host
