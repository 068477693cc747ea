package crypto

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/dep2p/go-ethaccount/pkg/types"
)

// Secp256k1 密钥常量
const (
	// PrivateKeySize 私钥大小（32 字节）
	PrivateKeySize = 32

	// recoveryOffset 以太坊 v 值相对恢复 ID 的偏移
	recoveryOffset = 27
)

// PersonalMessagePrefix personal_sign 对 32 字节消息使用的前缀
const PersonalMessagePrefix = "\x19Ethereum Signed Message:\n32"

// ============================================================================
//                              PrivateKey
// ============================================================================

// PrivateKey secp256k1 私钥
type PrivateKey struct {
	k *secp256k1.PrivateKey
}

// GenerateKey 使用系统随机源生成私钥
func GenerateKey() (*PrivateKey, error) {
	k, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return &PrivateKey{k: k}, nil
}

// GenerateKeyFromReader 使用指定随机源生成私钥
func GenerateKeyFromReader(r io.Reader) (*PrivateKey, error) {
	k, err := secp256k1.GeneratePrivateKeyFromRand(r)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{k: k}, nil
}

// PrivateKeyFromBytes 从 32 字节大端标量创建私钥
//
// 标量必须在 [1, N-1] 内。
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize, len(b))
	}
	var buf [PrivateKeySize]byte
	copy(buf[:], b)
	defer SecureZero(buf[:])

	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetBytes(&buf); overflow != 0 || scalar.IsZero() {
		return nil, ErrInvalidPrivateKey
	}
	return &PrivateKey{k: secp256k1.NewPrivateKey(&scalar)}, nil
}

// ParsePrivateKey 解析十六进制私钥（可带 0x 前缀）
func ParsePrivateKey(s string) (*PrivateKey, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	defer SecureZero(b)
	return PrivateKeyFromBytes(b)
}

// Bytes 返回 32 字节私钥标量
func (k *PrivateKey) Bytes() []byte {
	return k.k.Serialize()
}

// Hex 返回十六进制私钥（不带前缀）
func (k *PrivateKey) Hex() string {
	return hex.EncodeToString(k.k.Serialize())
}

// PublicKey 返回未压缩公钥
func (k *PrivateKey) PublicKey() types.PublicKey {
	var pub types.PublicKey
	copy(pub[:], k.k.PubKey().SerializeUncompressed())
	return pub
}

// Identity 返回私钥对应的以太坊地址
func (k *PrivateKey) Identity() types.Identity {
	return PubkeyToIdentity(k.PublicKey())
}

// Equals 常量时间比较两个私钥
func (k *PrivateKey) Equals(other *PrivateKey) bool {
	if k == nil || other == nil {
		return k == other
	}
	return subtle.ConstantTimeCompare(k.Bytes(), other.Bytes()) == 1
}

// Zero 清零私钥
func (k *PrivateKey) Zero() {
	k.k.Zero()
}

// ============================================================================
//                              地址与签名
// ============================================================================

// PubkeyToIdentity 由未压缩公钥派生以太坊地址
//
// 地址为 keccak256(X || Y) 的后 20 字节。调用方需保证公钥格式字节为 0x04。
func PubkeyToIdentity(pub types.PublicKey) types.Identity {
	h := Keccak256(pub[1:])
	var id types.Identity
	copy(id[:], h[12:])
	return id
}

// SignDigest 对 32 字节摘要做可恢复签名
//
// 返回 r || s || v，v 为 27 或 28。
func SignDigest(key *PrivateKey, digest types.Hash) (types.RecoverableSignature, error) {
	var sig types.RecoverableSignature
	if key == nil || key.k == nil {
		return sig, ErrNilPrivateKey
	}

	// compact 格式：code || r || s，code = 27 + 恢复 ID
	compact := ecdsa.SignCompact(key.k, digest[:], false)
	recID := compact[0] - recoveryOffset
	if recID > 1 {
		// r 的 x 坐标溢出 N，以太坊格式无法表示
		return sig, fmt.Errorf("%w: recovery id %d", ErrInvalidSignature, recID)
	}

	copy(sig[:64], compact[1:])
	sig[64] = recoveryOffset + recID
	return sig, nil
}

// PersonalDigest 计算 personal_sign 摘要
//
// digest = keccak256(PersonalMessagePrefix || keccak256(payload))
func PersonalDigest(payload types.Hash) types.Hash {
	inner := Keccak256(payload[:])
	return Keccak256([]byte(PersonalMessagePrefix), inner[:])
}

// SignPersonal 以钱包 personal_sign 的方式签名 32 字节授权负载
func SignPersonal(key *PrivateKey, payload types.Hash) (types.RecoverableSignature, error) {
	return SignDigest(key, PersonalDigest(payload))
}
