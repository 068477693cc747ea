package account

import "fmt"

// Error 账户策略错误
//
// 数值与已部署合约的错误码一致，不可重新编号。
type Error uint32

const (
	// ErrNotEnoughSigners 保留，单签策略不使用
	ErrNotEnoughSigners Error = 1
	// ErrNegativeAmount 保留
	ErrNegativeAmount Error = 2
	// ErrBadSignatureOrder 保留
	ErrBadSignatureOrder Error = 3
	// ErrUnknownSigner 尚未存储凭据
	ErrUnknownSigner Error = 4
	// ErrInvalidContext 保留
	ErrInvalidContext Error = 5
	// ErrSignerMismatch 恢复选择字节非法、恢复失败或恢复出的地址与声明不符
	ErrSignerMismatch Error = 6
	// ErrAuthenticationFailed 保留
	ErrAuthenticationFailed Error = 7
	// ErrUnauthorizedSigner 签名有效但不是已存凭据
	ErrUnauthorizedSigner Error = 8
)

var errorNames = map[Error]string{
	ErrNotEnoughSigners:     "not enough signers",
	ErrNegativeAmount:       "negative amount",
	ErrBadSignatureOrder:    "bad signature order",
	ErrUnknownSigner:        "unknown signer",
	ErrInvalidContext:       "invalid context",
	ErrSignerMismatch:       "signer mismatch",
	ErrAuthenticationFailed: "authentication failed",
	ErrUnauthorizedSigner:   "unauthorized signer",
}

// Error 实现 error 接口
func (e Error) Error() string {
	if name, ok := errorNames[e]; ok {
		return "account: " + name
	}
	return fmt.Sprintf("account: error %d", uint32(e))
}

// Code 返回数值错误码
func (e Error) Code() uint32 {
	return uint32(e)
}

// ErrorFromCode 由数值错误码解码
func ErrorFromCode(code uint32) (Error, bool) {
	e := Error(code)
	_, ok := errorNames[e]
	return e, ok
}
