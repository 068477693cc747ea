// Package interfaces - 宿主能力接口
//
// 本文件定义账户合约从宿主环境消费的能力。宿主负责实现，
// 账户只通过这些窄接口访问哈希、签名恢复、存储和租约。
package interfaces

import "github.com/dep2p/go-ethaccount/pkg/types"

// Hasher 256 位哈希原语
//
// 必须与目标链使用的哈希族一致（keccak-256）。
type Hasher interface {
	// Keccak256 计算所有输入拼接后的 keccak-256
	Keccak256(data ...[]byte) types.Hash
}

// Recoverer secp256k1 公钥恢复原语
type Recoverer interface {
	// Secp256k1Recover 从摘要、64 字节签名 r||s 和奇偶位恢复未压缩公钥
	//
	// 参数:
	//   - digest: 32 字节摘要
	//   - sig: r || s
	//   - parity: 0 或 1
	//
	// 返回:
	//   - types.PublicKey: 0x04 || X || Y
	//   - error: 签名无效或无法恢复
	Secp256k1Recover(digest types.Hash, sig [types.CoreSignatureSize]byte, parity uint8) (types.PublicKey, error)
}

// Storage 合约持久化存储
//
// 每个条目都有租约（TTL，单位为账本序号）。租约过期后条目不可访问。
type Storage interface {
	// Get 读取条目，不存在时返回 ErrNotFound 类错误
	Get(key []byte) ([]byte, error)

	// Set 写入条目（覆盖）
	Set(key, value []byte) error

	// Has 检查条目是否存在且未过期
	Has(key []byte) (bool, error)

	// ExtendTTL 延长条目租约
	//
	// 仅当剩余 TTL 小于 threshold 时生效，延长到 extendTo，
	// 不会缩短，且不超过 MaxTTL。
	ExtendTTL(key []byte, threshold, extendTo uint32) error

	// MaxTTL 平台允许的最大 TTL
	MaxTTL() uint32
}

// Deployer 部署相关租约
//
// 部署记录、代码和合约实例各自有独立租约，必须与存储条目同步延长。
type Deployer interface {
	// ExtendDeploymentTTL 延长部署记录租约
	ExtendDeploymentTTL(id types.ContractID, threshold, extendTo uint32) error

	// ExtendCodeTTL 延长代码租约
	ExtendCodeTTL(id types.ContractID, threshold, extendTo uint32) error

	// ExtendInstanceTTL 延长合约实例租约
	ExtendInstanceTTL(id types.ContractID, threshold, extendTo uint32) error
}

// Env 单次调用的宿主环境
//
// 注意：Env 有意不包含 RequireAuth。
type Env interface {
	Hasher
	Recoverer

	// Storage 返回当前合约的持久化存储
	Storage() Storage

	// Deployer 返回部署租约服务
	Deployer() Deployer

	// CurrentContract 返回当前合约地址
	CurrentContract() types.ContractID
}
