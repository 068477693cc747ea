package host

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/google/uuid"
	sha256 "github.com/minio/sha256-simd"

	"github.com/dep2p/go-ethaccount/pkg/types"
)

// 哈希原像的类型标签
const (
	preimageAuthorization byte = 0x01
	preimageContractID    byte = 0x02
	preimageCode          byte = 0x03
)

// NetworkID 网络标识：sha256(口令)
func NetworkID(passphrase string) types.Hash {
	return sha256.Sum256([]byte(passphrase))
}

// AuthPayload 计算授权负载哈希
//
// 原像：
//
//	tag(1) || networkID(32) || nonce(8, BE) || expiration(4, BE) || ops
//	ops = count(4) || { kind(1) || contract(32) || len(fn)(4) || fn || argc(4) || { len(arg)(4) || arg }* }*
//
// 结果就是账户 CheckAuth 收到的 32 字节 payload。
func AuthPayload(passphrase string, nonce int64, expiration uint32, ops types.AuthContext) types.Hash {
	h := sha256.New()
	network := NetworkID(passphrase)

	var u32 [4]byte
	var u64 [8]byte
	writeU32 := func(v uint32) {
		binary.BigEndian.PutUint32(u32[:], v)
		h.Write(u32[:])
	}

	h.Write([]byte{preimageAuthorization})
	h.Write(network[:])
	binary.BigEndian.PutUint64(u64[:], uint64(nonce))
	h.Write(u64[:])
	writeU32(expiration)

	writeU32(uint32(len(ops)))
	for _, op := range ops {
		h.Write([]byte{byte(op.Kind)})
		h.Write(op.Contract[:])
		writeU32(uint32(len(op.Function)))
		h.Write([]byte(op.Function))
		writeU32(uint32(len(op.Args)))
		for _, arg := range op.Args {
			writeU32(uint32(len(arg)))
			h.Write(arg)
		}
	}

	var out types.Hash
	h.Sum(out[:0])
	return out
}

// ContractIDFromSalt 由网络与盐派生合约地址
func ContractIDFromSalt(passphrase string, salt []byte) types.ContractID {
	network := NetworkID(passphrase)
	buf := make([]byte, 0, 1+len(network)+len(salt))
	buf = append(buf, preimageContractID)
	buf = append(buf, network[:]...)
	buf = append(buf, salt...)
	return types.ContractID(sha256.Sum256(buf))
}

// CodeHash 代码标识的哈希
func CodeHash(name string) types.Hash {
	buf := make([]byte, 0, 1+len(name))
	buf = append(buf, preimageCode)
	buf = append(buf, name...)
	return sha256.Sum256(buf)
}

// NewNonce 生成随机授权 nonce（非负 int64）
func NewNonce() (int64, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return 0, fmt.Errorf("generate nonce: %w", err)
	}
	return int64(binary.BigEndian.Uint64(u[:8]) & math.MaxInt64), nil
}
