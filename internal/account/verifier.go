package account

import (
	"github.com/dep2p/go-ethaccount/pkg/interfaces"
	"github.com/dep2p/go-ethaccount/pkg/lib/log"
	"github.com/dep2p/go-ethaccount/pkg/types"
)

var logger = log.Logger("account")

// Verifier 签名校验编排
//
// 每次调用只做一次状态转换：Pending → Accepted | Rejected(reason)。
type Verifier struct {
	env   interfaces.Env
	store *CredentialStore
}

// NewVerifier 创建校验器
func NewVerifier(env interfaces.Env, store *CredentialStore) *Verifier {
	return &Verifier{env: env, store: store}
}

// Verify 校验签名声明
//
// 按以下顺序短路：
//  1. 读取已存地址，缺失 → ErrUnknownSigner
//  2. 拆分签名并规范化恢复选择字节，非法 → ErrSignerMismatch
//  3. 计算摘要
//  4. 恢复公钥，失败 → ErrSignerMismatch
//  5. 推导候选地址
//  6. 候选 ≠ 声明地址 → ErrSignerMismatch
//  7. 候选 ≠ 已存地址 → ErrUnauthorizedSigner
//  8. 接受
//
// ops 不参与校验。
func (v *Verifier) Verify(payload types.Hash, claim types.SignedClaim, _ types.AuthContext) error {
	stored, err := v.store.Read()
	if err != nil {
		logger.Debug("授权拒绝：读取凭据失败", "error", err)
		return err
	}

	selector, core := SplitSignature(claim.Signature)
	parity, err := NormalizeSelector(selector)
	if err != nil {
		logger.Debug("授权拒绝：恢复选择字节非法", "selector", selector)
		return err
	}

	digest := BuildDigest(v.env, payload)

	pub, err := v.env.Secp256k1Recover(digest, core, parity)
	if err != nil {
		logger.Debug("授权拒绝：公钥恢复失败", "error", err)
		return ErrSignerMismatch
	}

	candidate, err := DeriveIdentity(v.env, pub)
	if err != nil {
		logger.Debug("授权拒绝：公钥格式无效", "error", err)
		return ErrSignerMismatch
	}

	if !candidate.Equal(claim.Identity) {
		logger.Debug("授权拒绝：签名者与声明不符", "claimed", claim.Identity.String())
		return ErrSignerMismatch
	}

	if !candidate.Equal(stored) {
		logger.Debug("授权拒绝：签名者未授权", "signer", candidate.String())
		return ErrUnauthorizedSigner
	}

	logger.Debug("授权通过", "signer", candidate.String())
	return nil
}
