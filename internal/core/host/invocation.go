package host

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dep2p/go-ethaccount/internal/core/storage/engine"
	"github.com/dep2p/go-ethaccount/pkg/interfaces"
	"github.com/dep2p/go-ethaccount/pkg/types"
)

// AuthEntry 一次授权请求
type AuthEntry struct {
	// Nonce 每个合约内唯一
	Nonce int64 `json:"nonce"`

	// SignatureExpiration 签名最后有效的账本
	SignatureExpiration uint32 `json:"signature_expiration"`

	// Claim 签名声明
	Claim types.RawClaim `json:"claim"`

	// Ops 被授权的操作
	Ops types.AuthContext `json:"ops"`
}

// Payload 计算该请求的授权负载
func (e AuthEntry) Payload(passphrase string) types.Hash {
	return AuthPayload(passphrase, e.Nonce, e.SignatureExpiration, e.Ops)
}

// Invocation 一次调用帧
//
// 记录授权栈；同一合约在栈中时再次授权返回 ErrReentrantAuth。
type Invocation struct {
	host      *Host
	authStack []types.ContractID
	authCalls int
}

func newInvocation(h *Host) *Invocation {
	return &Invocation{host: h}
}

// Env 返回绑定到合约 id 的宿主环境
func (inv *Invocation) Env(id types.ContractID) interfaces.Env {
	return &invocationEnv{
		host:     inv.host,
		contract: id,
		storage:  inv.host.Storage(id),
	}
}

// Ledger 返回当前账本
func (inv *Invocation) Ledger() uint32 {
	return inv.host.ledger.Current()
}

// AuthCalls 返回本次调用中 RequireAuth 被调用的次数
func (inv *Invocation) AuthCalls() int {
	return inv.authCalls
}

// RequireAuth 要求合约 id 授权本次操作
//
// 检查顺序：重入、合约实例、签名过期、nonce，最后调用账户 CheckAuth。
// 通过后记录 nonce。
func (inv *Invocation) RequireAuth(id types.ContractID, entry AuthEntry) error {
	inv.authCalls++
	seq := inv.host.ledger.Current()
	err := inv.requireAuth(id, entry, seq)
	inv.host.emitAuthorization(id, entry, seq, err)
	return err
}

func (inv *Invocation) requireAuth(id types.ContractID, entry AuthEntry, seq uint32) error {
	h := inv.host

	for _, active := range inv.authStack {
		if active == id {
			logger.Warn("拒绝重入授权", "contract", id.ShortString())
			return ErrReentrantAuth
		}
	}

	dep, err := h.deployer.Get(id)
	if err != nil {
		return err
	}
	if dep.InstanceLiveUntil < seq {
		return fmt.Errorf("contract instance %s: %w", id.ShortString(), ErrEntryArchived)
	}
	factory, ok := h.factory(dep.CodeHash)
	if !ok {
		return fmt.Errorf("%w: %s", ErrCodeNotFound, dep.CodeName)
	}

	if entry.SignatureExpiration < seq {
		return fmt.Errorf("%w: expiration %d < ledger %d", ErrSignatureExpired, entry.SignatureExpiration, seq)
	}
	if uint64(entry.SignatureExpiration) > uint64(seq)+uint64(h.config.MaxTTL()) {
		return fmt.Errorf("%w: expiration %d", ErrExpirationTooFar, entry.SignatureExpiration)
	}

	nk := nonceKey(id, entry.Nonce)
	if used, err := inv.nonceUsed(nk, seq); err != nil {
		return err
	} else if used {
		return fmt.Errorf("%w: %d", ErrNonceReused, entry.Nonce)
	}

	payload := entry.Payload(h.config.NetworkPassphrase)

	inv.authStack = append(inv.authStack, id)
	err = factory(inv.Env(id)).CheckAuth(payload[:], entry.Claim, entry.Ops)
	inv.authStack = inv.authStack[:len(inv.authStack)-1]
	if err != nil {
		logger.Debug("授权失败", "contract", id.ShortString(), "error", err)
		return err
	}

	// nonce 记录保留到签名过期
	if err := h.nonces.Put(nk, encodeEntry(entry.SignatureExpiration, nil)); err != nil {
		return fmt.Errorf("record nonce: %w", err)
	}

	logger.Debug("授权通过", "contract", id.ShortString(), "nonce", entry.Nonce)
	return nil
}

func (inv *Invocation) nonceUsed(key []byte, seq uint32) (bool, error) {
	raw, err := inv.host.nonces.Get(key)
	if errors.Is(err, engine.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	liveUntil, _, err := decodeEntry(raw)
	if err != nil {
		return false, err
	}
	return liveUntil >= seq, nil
}

func nonceKey(id types.ContractID, nonce int64) []byte {
	key := make([]byte, types.ContractIDSize+8)
	copy(key, id[:])
	binary.BigEndian.PutUint64(key[types.ContractIDSize:], uint64(nonce))
	return key
}

// ============================================================================
//                              Env
// ============================================================================

// invocationEnv 绑定到单个合约的宿主环境
//
// 不暴露 RequireAuth。
type invocationEnv struct {
	host     *Host
	contract types.ContractID
	storage  *ContractStorage
}

var _ interfaces.Env = (*invocationEnv)(nil)

func (e *invocationEnv) Keccak256(data ...[]byte) types.Hash {
	return e.host.hasher.Keccak256(data...)
}

func (e *invocationEnv) Secp256k1Recover(digest types.Hash, sig [types.CoreSignatureSize]byte, parity uint8) (types.PublicKey, error) {
	return e.host.recoverer.Secp256k1Recover(digest, sig, parity)
}

func (e *invocationEnv) Storage() interfaces.Storage {
	return e.storage
}

func (e *invocationEnv) Deployer() interfaces.Deployer {
	return e.host.deployer
}

func (e *invocationEnv) CurrentContract() types.ContractID {
	return e.contract
}
