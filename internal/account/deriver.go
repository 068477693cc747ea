package account

import (
	"fmt"

	"github.com/dep2p/go-ethaccount/pkg/interfaces"
	"github.com/dep2p/go-ethaccount/pkg/types"
)

// DeriveIdentity 由未压缩公钥推导以太坊地址
//
// 对 pub[1:65] 做 keccak-256，取后 20 字节。公钥格式字节必须为 0x04。
func DeriveIdentity(h interfaces.Hasher, pub types.PublicKey) (types.Identity, error) {
	if pub[0] != types.UncompressedKeyMarker {
		return types.EmptyIdentity, fmt.Errorf("%w: public key marker %#x", ErrSignerMismatch, pub[0])
	}

	digest := h.Keccak256(pub[1:])

	var id types.Identity
	copy(id[:], digest[types.HashSize-types.IdentitySize:])
	return id, nil
}
