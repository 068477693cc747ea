package host

import "errors"

var (
	// ErrEntryNotFound 合约条目不存在
	ErrEntryNotFound = errors.New("host: entry not found")

	// ErrEntryArchived 条目租约已过期
	ErrEntryArchived = errors.New("host: entry archived")

	// ErrInvalidTTL threshold 大于 extendTo
	ErrInvalidTTL = errors.New("host: threshold exceeds extend_to")

	// ErrContractNotFound 合约未部署
	ErrContractNotFound = errors.New("host: contract not found")

	// ErrContractExists 合约地址已被占用
	ErrContractExists = errors.New("host: contract already deployed")

	// ErrCodeNotFound 代码未注册
	ErrCodeNotFound = errors.New("host: code not registered")

	// ErrSignatureExpired 授权签名已过期
	ErrSignatureExpired = errors.New("host: signature expired")

	// ErrExpirationTooFar 授权签名过期账本超出最大 TTL
	ErrExpirationTooFar = errors.New("host: signature expiration too far")

	// ErrNonceReused 授权 nonce 已使用
	ErrNonceReused = errors.New("host: nonce already used")

	// ErrReentrantAuth 同一合约的授权正在进行中
	ErrReentrantAuth = errors.New("host: re-entrant authorization")

	// ErrNotStarted Host 未启动或已关闭
	ErrNotStarted = errors.New("host: not running")

	// ErrNilEngine 缺少存储引擎
	ErrNilEngine = errors.New("host: storage engine is required")
)
