package account

import "github.com/dep2p/go-ethaccount/pkg/types"

// 恢复选择字节的合法取值
const (
	selectorEven uint8 = 27
	selectorOdd  uint8 = 28
)

// SplitSignature 拆分可恢复签名
//
// 返回恢复选择字节 sig[64] 与 r || s（sig[0:64]）。
func SplitSignature(sig types.RecoverableSignature) (selector uint8, core [types.CoreSignatureSize]byte) {
	copy(core[:], sig[:types.CoreSignatureSize])
	return sig[types.CoreSignatureSize], core
}

// NormalizeSelector 将恢复选择字节转换为奇偶位
//
// 只接受 27 和 28；其余取值在恢复之前即被拒绝。
func NormalizeSelector(selector uint8) (uint8, error) {
	if selector != selectorEven && selector != selectorOdd {
		return 0, ErrSignerMismatch
	}
	return selector - selectorEven, nil
}
