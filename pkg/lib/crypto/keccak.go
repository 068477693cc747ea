package crypto

import (
	"golang.org/x/crypto/sha3"

	"github.com/dep2p/go-ethaccount/pkg/types"
)

// Keccak256 计算以太坊使用的 keccak-256（非 NIST SHA3-256）
//
// 多段输入按顺序拼接后哈希。
func Keccak256(data ...[]byte) types.Hash {
	var out types.Hash
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	h.Sum(out[:0])
	return out
}

// Keccak256Hasher 以 keccak-256 实现宿主哈希能力
type Keccak256Hasher struct{}

// Keccak256 实现 interfaces.Hasher
func (Keccak256Hasher) Keccak256(data ...[]byte) types.Hash {
	return Keccak256(data...)
}
