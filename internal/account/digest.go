package account

import (
	"github.com/dep2p/go-ethaccount/pkg/interfaces"
	"github.com/dep2p/go-ethaccount/pkg/types"
)

// MessagePrefix personal_sign 前缀（28 字节，不含结尾 NUL）
const MessagePrefix = "\x19Ethereum Signed Message:\n32"

// digestInputSize 摘要输入长度：前缀 28 + authHash 32
const digestInputSize = len(MessagePrefix) + types.HashSize

// BuildDigest 计算签名方实际签名的摘要
//
//	authHash = keccak256(payload)
//	digest   = keccak256(MessagePrefix || authHash)
func BuildDigest(h interfaces.Hasher, payload types.Hash) types.Hash {
	authHash := h.Keccak256(payload[:])

	var buf [digestInputSize]byte
	n := copy(buf[:], MessagePrefix)
	copy(buf[n:], authHash[:])

	return h.Keccak256(buf[:])
}
