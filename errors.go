package ethaccount

import "errors"

// 公共错误定义
var (
	// ErrNilKey 签名私钥为空
	ErrNilKey = errors.New("nil signing key")

	// ErrEmptySalt 部署 salt 为空
	ErrEmptySalt = errors.New("empty deployment salt")
)
