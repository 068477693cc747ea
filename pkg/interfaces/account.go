package interfaces

import "github.com/dep2p/go-ethaccount/pkg/types"

// CustomAccount 自定义账户合约的授权入口
//
// 宿主在对该账户执行 RequireAuth 时调用，终端用户不直接调用。
type CustomAccount interface {
	// CheckAuth 校验签名声明
	//
	// 参数:
	//   - payload: 32 字节签名载荷哈希
	//   - claim: 未解码的签名声明
	//   - ops: 本次授权涉及的操作（可不检查）
	//
	// 返回:
	//   - error: nil 表示授权通过
	CheckAuth(payload []byte, claim types.RawClaim, ops types.AuthContext) error
}

// AccountFactory 为一次调用绑定宿主环境并返回账户实例
type AccountFactory func(env Env) CustomAccount
