package account

import (
	"github.com/dep2p/go-ethaccount/pkg/interfaces"
	"github.com/dep2p/go-ethaccount/pkg/types"
)

var _ interfaces.CustomAccount = (*Account)(nil)

// Account 以太坊地址控制的自定义账户
//
// 每次调用由宿主绑定一个 Env；Account 本身不保存跨调用状态。
type Account struct {
	env      interfaces.Env
	store    *CredentialStore
	verifier *Verifier
}

// New 为一次调用创建账户实例
func New(env interfaces.Env) *Account {
	store := NewCredentialStore(env)
	return &Account{
		env:      env,
		store:    store,
		verifier: NewVerifier(env, store),
	}
}

// Factory 实现 interfaces.AccountFactory
func Factory(env interfaces.Env) interfaces.CustomAccount {
	return New(env)
}

// Init 存储授权地址并延长全部租约
//
// identity 必须为 20 字节，否则返回 *types.LengthError。
func (a *Account) Init(identity []byte) error {
	id, err := types.IdentityFromBytes(identity)
	if err != nil {
		return err
	}
	return a.Initialize(id)
}

// Initialize Init 的类型化版本
func (a *Account) Initialize(id types.Identity) error {
	if err := a.store.Initialize(id); err != nil {
		return err
	}
	if err := a.store.ExtendLifetime(); err != nil {
		return err
	}
	logger.Info("账户凭据已初始化",
		"contract", a.env.CurrentContract().ShortString(),
		"signer", id.String())
	return nil
}

// ExtendTTL 将凭据及部署相关租约延长到最大值
func (a *Account) ExtendTTL() error {
	if err := a.store.ExtendLifetime(); err != nil {
		return err
	}
	logger.Info("账户租约已延长", "contract", a.env.CurrentContract().ShortString())
	return nil
}

// Signer 返回当前授权地址
func (a *Account) Signer() (types.Identity, error) {
	return a.store.Read()
}

// CheckAuth 宿主授权入口
//
// payload 必须为 32 字节，claim 必须为 20 字节地址与 65 字节签名，
// 否则返回 *types.LengthError。
func (a *Account) CheckAuth(payload []byte, claim types.RawClaim, ops types.AuthContext) error {
	hash, err := types.HashFromBytes(payload)
	if err != nil {
		return err
	}
	signed, err := claim.Decode()
	if err != nil {
		return err
	}
	return a.CheckAuthorization(hash, signed, ops)
}

// CheckAuthorization CheckAuth 的类型化版本
func (a *Account) CheckAuthorization(payload types.Hash, claim types.SignedClaim, ops types.AuthContext) error {
	return a.verifier.Verify(payload, claim, ops)
}
