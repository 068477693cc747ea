package types

import "encoding/hex"

// ============================================================================
//                              RecoverableSignature
// ============================================================================

const (
	// SignatureSize 可恢复签名长度：r(32) || s(32) || v(1)
	SignatureSize = 65

	// CoreSignatureSize 不含恢复选择字节的签名长度：r(32) || s(32)
	CoreSignatureSize = 64

	// PublicKeySize 未压缩公钥长度：0x04 || X(32) || Y(32)
	PublicKeySize = 65

	// UncompressedKeyMarker 未压缩公钥格式字节
	UncompressedKeyMarker = 0x04
)

// RecoverableSignature 以太坊格式的可恢复签名
//
// 布局为 r || s || v，v 是恢复选择字节（合法值 27 / 28）。
type RecoverableSignature [SignatureSize]byte

// SignatureFromBytes 从字节切片创建签名
func SignatureFromBytes(b []byte) (RecoverableSignature, error) {
	var sig RecoverableSignature
	if err := checkLength("signature", SignatureSize, b); err != nil {
		return sig, err
	}
	copy(sig[:], b)
	return sig, nil
}

// ParseSignature 解析十六进制签名（可带 0x 前缀）
func ParseSignature(s string) (RecoverableSignature, error) {
	b, err := decodeHex(s)
	if err != nil {
		return RecoverableSignature{}, err
	}
	return SignatureFromBytes(b)
}

// R 返回 r 分量
func (s RecoverableSignature) R() [32]byte {
	var r [32]byte
	copy(r[:], s[0:32])
	return r
}

// S 返回 s 分量
func (s RecoverableSignature) S() [32]byte {
	var v [32]byte
	copy(v[:], s[32:64])
	return v
}

// V 返回恢复选择字节
func (s RecoverableSignature) V() uint8 {
	return s[64]
}

// Bytes 返回字节切片
func (s RecoverableSignature) Bytes() []byte {
	return s[:]
}

// String 返回十六进制表示（带 0x 前缀）
func (s RecoverableSignature) String() string {
	return "0x" + hex.EncodeToString(s[:])
}

// ============================================================================
//                              PublicKey
// ============================================================================

// PublicKey 未压缩 secp256k1 公钥
type PublicKey [PublicKeySize]byte

// PublicKeyFromBytes 从字节切片创建公钥
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pk PublicKey
	if err := checkLength("public key", PublicKeySize, b); err != nil {
		return pk, err
	}
	copy(pk[:], b)
	return pk, nil
}

// Bytes 返回字节切片
func (pk PublicKey) Bytes() []byte {
	return pk[:]
}

// ============================================================================
//                              SignedClaim
// ============================================================================

// SignedClaim 调用方声明的签名者身份及其签名
//
// 调用方生成，在身份被重新推导之前不可信。
type SignedClaim struct {
	// Identity 声明的签名者身份
	Identity Identity

	// Signature 可恢复签名
	Signature RecoverableSignature
}

// RawClaim 未解码的签名声明（宿主边界形式）
type RawClaim struct {
	// Address 20 字节地址
	Address []byte `json:"address"`

	// Signature 65 字节签名
	Signature []byte `json:"signature"`
}

// Decode 校验长度并解码为 SignedClaim
func (c RawClaim) Decode() (SignedClaim, error) {
	id, err := IdentityFromBytes(c.Address)
	if err != nil {
		return SignedClaim{}, err
	}
	sig, err := SignatureFromBytes(c.Signature)
	if err != nil {
		return SignedClaim{}, err
	}
	return SignedClaim{Identity: id, Signature: sig}, nil
}

// Raw 返回边界形式
func (c SignedClaim) Raw() RawClaim {
	return RawClaim{
		Address:   c.Identity.Bytes(),
		Signature: c.Signature.Bytes(),
	}
}
