// Package types 定义账户授权的基础类型
//
// 这是整个系统的最底层包，不依赖任何其他内部包。
// 所有类型都是定长值类型，用于在宿主、账户和客户端之间传递数据。
//
// # 文件组织
//
//   - identity.go  - Identity（20 字节以太坊地址）
//   - hash.go      - Hash（32 字节载荷哈希 / 摘要）
//   - signature.go - RecoverableSignature, PublicKey, SignedClaim, RawClaim
//   - auth.go      - ContractID, Operation, AuthContext
//   - events.go    - 事件总线上发布的事件
//   - errors.go    - 长度校验错误
//
// # 边界解码
//
// 所有来自外部的字节切片都通过 XxxFromBytes 解码，长度不符时返回
// *LengthError，而不是 panic。
package types
