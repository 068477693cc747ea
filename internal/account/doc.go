// Package account 实现以太坊地址控制的自定义账户授权策略
//
// 账户只绑定一个 20 字节以太坊地址。宿主在授权时提供 32 字节载荷哈希、
// 签名声明（声明地址 + 65 字节可恢复签名）以及本次授权涉及的操作。
//
// 校验流程：
//
//	读取已存地址 → 拆分签名 → 计算摘要 → 恢复公钥 → 推导地址
//	    → 与声明地址比较 → 与已存地址比较 → 接受
//
// 摘要链：
//
//	authHash = keccak256(payload)
//	digest   = keccak256("\x19Ethereum Signed Message:\n32" || authHash)
//
// 账户只通过 interfaces.Env 访问宿主能力。Env 不提供 RequireAuth，
// 校验过程中不可能再次触发授权。
//
// 组件：
//   - digest.go: 摘要构造
//   - codec.go: 签名拆分与恢复选择字节规范化
//   - deriver.go: 由公钥推导地址
//   - credential.go: 凭据存储与租约延长
//   - verifier.go: 校验编排
//   - account.go: 宿主入口（Init / ExtendTTL / CheckAuth）
package account
