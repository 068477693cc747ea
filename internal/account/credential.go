package account

import (
	"fmt"

	"github.com/dep2p/go-ethaccount/pkg/interfaces"
	"github.com/dep2p/go-ethaccount/pkg/types"
)

// CredentialKey 凭据在合约持久化存储中的键
var CredentialKey = []byte("pk")

// CredentialStore 凭据存储
//
// 至多保存一个地址。
type CredentialStore struct {
	env interfaces.Env
}

// NewCredentialStore 创建凭据存储
func NewCredentialStore(env interfaces.Env) *CredentialStore {
	return &CredentialStore{env: env}
}

// Initialize 写入授权地址，已有值直接覆盖
func (s *CredentialStore) Initialize(id types.Identity) error {
	if err := s.env.Storage().Set(CredentialKey, id.Bytes()); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	return nil
}

// Read 读取授权地址
//
// 未初始化时返回 ErrUnknownSigner；存储值长度不是 20 字节时返回 *types.LengthError。
func (s *CredentialStore) Read() (types.Identity, error) {
	st := s.env.Storage()

	ok, err := st.Has(CredentialKey)
	if err != nil {
		return types.EmptyIdentity, fmt.Errorf("read credential: %w", err)
	}
	if !ok {
		return types.EmptyIdentity, ErrUnknownSigner
	}

	raw, err := st.Get(CredentialKey)
	if err != nil {
		return types.EmptyIdentity, fmt.Errorf("read credential: %w", err)
	}
	return types.IdentityFromBytes(raw)
}

// ExtendLifetime 将凭据、部署记录、代码和合约实例的租约同时延长到最大值
//
// threshold 与 extendTo 都取 MaxTTL，因此每次调用都把剩余租约补满；
// 租约只增不减，重复调用结果相同。
func (s *CredentialStore) ExtendLifetime() error {
	st := s.env.Storage()
	maxTTL := st.MaxTTL()

	if err := st.ExtendTTL(CredentialKey, maxTTL, maxTTL); err != nil {
		return fmt.Errorf("extend credential ttl: %w", err)
	}

	id := s.env.CurrentContract()
	dep := s.env.Deployer()
	if err := dep.ExtendDeploymentTTL(id, maxTTL, maxTTL); err != nil {
		return fmt.Errorf("extend deployment ttl: %w", err)
	}
	if err := dep.ExtendCodeTTL(id, maxTTL, maxTTL); err != nil {
		return fmt.Errorf("extend code ttl: %w", err)
	}
	if err := dep.ExtendInstanceTTL(id, maxTTL, maxTTL); err != nil {
		return fmt.Errorf("extend instance ttl: %w", err)
	}
	return nil
}
