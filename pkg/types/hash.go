package types

import "encoding/hex"

// HashSize 哈希长度（32 字节）
const HashSize = 32

// Hash 32 字节哈希
//
// 用于宿主提供的签名载荷哈希以及签名摘要。
type Hash [HashSize]byte

// EmptyHash 空哈希
var EmptyHash Hash

// HashFromBytes 从字节切片创建 Hash
func HashFromBytes(b []byte) (Hash, error) {
	if err := checkLength("payload hash", HashSize, b); err != nil {
		return EmptyHash, err
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}

// ParseHash 解析十六进制哈希（可带 0x 前缀）
func ParseHash(s string) (Hash, error) {
	b, err := decodeHex(s)
	if err != nil {
		return EmptyHash, err
	}
	return HashFromBytes(b)
}

// Bytes 返回字节切片
func (h Hash) Bytes() []byte {
	return h[:]
}

// String 返回十六进制表示（带 0x 前缀）
func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// IsEmpty 检查是否为空
func (h Hash) IsEmpty() bool {
	return h == EmptyHash
}

// MarshalText 实现 encoding.TextMarshaler
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
