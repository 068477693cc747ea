// Package interfaces 定义公共接口
//
// # 宿主能力（账户合约消费）
//
//   - host.go    - Hasher, Recoverer, Storage, Deployer, Env
//
// # 账户入口（宿主调用）
//
//   - account.go - CustomAccount, AccountFactory
//
// # 存储引擎
//
//   - storage.go - Engine（BadgerDB 等键值存储后端）
//
// # 事件
//
//   - eventbus.go - EventBus, Subscription, Emitter
//
// # 依赖关系
//
// 本包只依赖 pkg/types。账户合约只能看到 Env，
// Env 不包含 RequireAuth，因此账户代码在结构上无法对自身发起授权请求。
package interfaces
