package types

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// ============================================================================
//                              Identity - 签名者身份
// ============================================================================

// IdentitySize 身份长度（20 字节）
const IdentitySize = 20

// Identity 以太坊风格的账户地址
//
// 由未压缩公钥去掉格式字节后做 keccak-256，取最后 20 字节得到。
// 两个 Identity 相等当且仅当字节相等。
type Identity [IdentitySize]byte

// EmptyIdentity 空身份
var EmptyIdentity Identity

// IdentityFromBytes 从字节切片创建 Identity
func IdentityFromBytes(b []byte) (Identity, error) {
	if err := checkLength("identity", IdentitySize, b); err != nil {
		return EmptyIdentity, err
	}
	var id Identity
	copy(id[:], b)
	return id, nil
}

// ParseIdentity 解析十六进制地址（可带 0x 前缀，大小写不敏感）
func ParseIdentity(s string) (Identity, error) {
	b, err := decodeHex(s)
	if err != nil {
		return EmptyIdentity, err
	}
	return IdentityFromBytes(b)
}

// Bytes 返回 Identity 的字节切片
func (id Identity) Bytes() []byte {
	return id[:]
}

// Equal 比较两个 Identity 是否相等
func (id Identity) Equal(other Identity) bool {
	return id == other
}

// IsEmpty 检查 Identity 是否为空
func (id Identity) IsEmpty() bool {
	return id == EmptyIdentity
}

// Hex 返回小写十六进制表示（带 0x 前缀）
func (id Identity) Hex() string {
	return "0x" + hex.EncodeToString(id[:])
}

// String 返回 EIP-55 校验和格式的地址
//
// 对小写十六进制文本做 keccak-256，第 i 个半字节 >= 8 时
// 第 i 个字母字符大写。
func (id Identity) String() string {
	lower := hex.EncodeToString(id[:])

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	sum := h.Sum(nil)

	out := []byte(lower)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := sum[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if nibble >= 8 {
			out[i] = c - 'a' + 'A'
		}
	}
	return "0x" + string(out)
}

// MarshalText 实现 encoding.TextMarshaler
func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (id *Identity) UnmarshalText(text []byte) error {
	parsed, err := ParseIdentity(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// decodeHex 解码可带 0x 前缀的十六进制字符串
func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return b, nil
}
