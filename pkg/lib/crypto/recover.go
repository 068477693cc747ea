package crypto

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/dep2p/go-ethaccount/pkg/types"
)

// Secp256k1Recoverer 以 secp256k1 公钥恢复实现宿主恢复能力
type Secp256k1Recoverer struct{}

// Secp256k1Recover 实现 interfaces.Recoverer
func (Secp256k1Recoverer) Secp256k1Recover(digest types.Hash, sig [types.CoreSignatureSize]byte, parity uint8) (types.PublicKey, error) {
	return RecoverPubkey(digest, sig, parity)
}

// RecoverPubkey 从摘要和 r || s 签名恢复未压缩公钥
//
// parity 必须为 0 或 1；s 必须不大于 N/2。
func RecoverPubkey(digest types.Hash, sig [types.CoreSignatureSize]byte, parity uint8) (types.PublicKey, error) {
	var pub types.PublicKey
	if parity > 1 {
		return pub, fmt.Errorf("%w: %d", ErrInvalidRecoveryID, parity)
	}

	var s secp256k1.ModNScalar
	var sBytes [32]byte
	copy(sBytes[:], sig[32:])
	if overflow := s.SetBytes(&sBytes); overflow != 0 {
		return pub, ErrInvalidSignature
	}
	if s.IsOverHalfOrder() {
		return pub, ErrHighS
	}

	var compact [1 + types.CoreSignatureSize]byte
	compact[0] = recoveryOffset + parity
	copy(compact[1:], sig[:])

	key, _, err := ecdsa.RecoverCompact(compact[:], digest[:])
	if err != nil {
		return pub, fmt.Errorf("%w: %v", ErrRecoveryFailed, err)
	}
	copy(pub[:], key.SerializeUncompressed())
	return pub, nil
}

// Recover 从 65 字节 r || s || v 签名恢复地址
//
// v 必须为 27 或 28。
func Recover(digest types.Hash, sig types.RecoverableSignature) (types.Identity, error) {
	v := sig.V()
	if v != recoveryOffset && v != recoveryOffset+1 {
		return types.Identity{}, fmt.Errorf("%w: v=%d", ErrInvalidRecoveryID, v)
	}
	var core [types.CoreSignatureSize]byte
	copy(core[:], sig[:types.CoreSignatureSize])
	pub, err := RecoverPubkey(digest, core, v-recoveryOffset)
	if err != nil {
		return types.Identity{}, err
	}
	return PubkeyToIdentity(pub), nil
}
