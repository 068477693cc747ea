package host

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-ethaccount/internal/account"
	"github.com/dep2p/go-ethaccount/internal/core/eventbus"
	"github.com/dep2p/go-ethaccount/pkg/interfaces"
	"github.com/dep2p/go-ethaccount/pkg/lib/crypto"
	"github.com/dep2p/go-ethaccount/pkg/types"
)

const (
	signerPriv = "21b217d03692d462a5a55509a0eddc8bf090dc2a6e3769b2299201a70aa05815"
	otherPriv  = "0000000000000000000000000000000000000000000000000000000000000002"
)

func transferOps() types.AuthContext {
	return types.AuthContext{{
		Kind:     types.OperationContractCall,
		Contract: types.ContractID{0xaa},
		Function: "transfer",
		Args:     [][]byte{[]byte("from"), []byte("to"), {100}},
	}}
}

// deployAccount 部署并初始化一个以 key 为签名者的账户合约
func deployAccount(t *testing.T, h *Host, key *crypto.PrivateKey) types.ContractID {
	t.Helper()
	_, err := h.RegisterCode("ethaccount", account.Factory)
	require.NoError(t, err)
	id, err := h.Deploy("ethaccount", key.Identity().Bytes())
	require.NoError(t, err)

	err = h.Invoke(context.Background(), func(inv *Invocation) error {
		return account.New(inv.Env(id)).Init(key.Identity().Bytes())
	})
	require.NoError(t, err)
	return id
}

func mustKey(t *testing.T, s string) *crypto.PrivateKey {
	t.Helper()
	key, err := crypto.ParsePrivateKey(s)
	require.NoError(t, err)
	return key
}

// signEntry 以 key 对授权请求签名
func signEntry(t *testing.T, h *Host, key *crypto.PrivateKey, nonce int64, expiration uint32, ops types.AuthContext) AuthEntry {
	t.Helper()
	entry := AuthEntry{Nonce: nonce, SignatureExpiration: expiration, Ops: ops}
	sig, err := crypto.SignPersonal(key, entry.Payload(h.Config().NetworkPassphrase))
	require.NoError(t, err)
	entry.Claim = types.SignedClaim{Identity: key.Identity(), Signature: sig}.Raw()
	return entry
}

func TestRequireAuth_Accepted(t *testing.T) {
	h := newTestHost(t)
	key := mustKey(t, signerPriv)
	id := deployAccount(t, h, key)

	entry := signEntry(t, h, key, 1, 20, transferOps())
	err := h.Invoke(context.Background(), func(inv *Invocation) error {
		if err := inv.RequireAuth(id, entry); err != nil {
			return err
		}
		// 账户校验期间没有再次请求授权
		assert.Equal(t, 1, inv.AuthCalls())
		return nil
	})
	require.NoError(t, err)
	t.Log("✅ 授权通过")
}

func TestRequireAuth_WrongSigner(t *testing.T) {
	h := newTestHost(t)
	id := deployAccount(t, h, mustKey(t, signerPriv))

	entry := signEntry(t, h, mustKey(t, otherPriv), 1, 20, transferOps())
	err := h.RequireAuth(context.Background(), id, entry)
	assert.ErrorIs(t, err, account.ErrUnauthorizedSigner)
}

func TestRequireAuth_TamperedOps(t *testing.T) {
	h := newTestHost(t)
	key := mustKey(t, signerPriv)
	id := deployAccount(t, h, key)

	entry := signEntry(t, h, key, 1, 20, transferOps())
	entry.Ops[0].Function = "burn"
	err := h.RequireAuth(context.Background(), id, entry)
	assert.ErrorIs(t, err, account.ErrSignerMismatch)
}

func TestRequireAuth_NonceReplay(t *testing.T) {
	h := newTestHost(t)
	key := mustKey(t, signerPriv)
	id := deployAccount(t, h, key)

	entry := signEntry(t, h, key, 7, 20, transferOps())
	require.NoError(t, h.RequireAuth(context.Background(), id, entry))
	assert.ErrorIs(t, h.RequireAuth(context.Background(), id, entry), ErrNonceReused)

	// 失败的授权不消耗 nonce
	bad := signEntry(t, h, mustKey(t, otherPriv), 8, 20, transferOps())
	require.Error(t, h.RequireAuth(context.Background(), id, bad))
	assert.NoError(t, h.RequireAuth(context.Background(), id, signEntry(t, h, key, 8, 20, transferOps())))
}

func TestRequireAuth_Expiration(t *testing.T) {
	h := newTestHost(t)
	key := mustKey(t, signerPriv)
	id := deployAccount(t, h, key)

	advance(t, h, 10) // seq 11

	expired := signEntry(t, h, key, 1, 10, transferOps())
	assert.ErrorIs(t, h.RequireAuth(context.Background(), id, expired), ErrSignatureExpired)

	// 最后有效账本等于当前账本
	current := signEntry(t, h, key, 2, 11, transferOps())
	assert.NoError(t, h.RequireAuth(context.Background(), id, current))

	tooFar := signEntry(t, h, key, 3, 11+h.Config().MaxTTL()+1, transferOps())
	assert.ErrorIs(t, h.RequireAuth(context.Background(), id, tooFar), ErrExpirationTooFar)
}

func TestRequireAuth_Uninitialized(t *testing.T) {
	h := newTestHost(t)
	_, err := h.RegisterCode("ethaccount", account.Factory)
	require.NoError(t, err)
	id, err := h.Deploy("ethaccount", []byte("fresh"))
	require.NoError(t, err)

	key := mustKey(t, signerPriv)
	err = h.RequireAuth(context.Background(), id, signEntry(t, h, key, 1, 5, transferOps()))
	assert.ErrorIs(t, err, account.ErrUnknownSigner)
}

func TestRequireAuth_ArchivedInstance(t *testing.T) {
	h := newTestHost(t)
	key := mustKey(t, signerPriv)
	id := deployAccount(t, h, key)

	// 初始化把所有租约补到 seq 1 + MaxTTL = 100
	report, err := h.LeaseReport(id, account.CredentialKey)
	require.NoError(t, err)
	require.NotNil(t, report.Entry)
	assert.Equal(t, uint32(100), report.Entry.LiveUntil)
	assert.Equal(t, uint32(100), report.Instance.LiveUntil)

	advance(t, h, 60) // seq 61
	err = h.Invoke(context.Background(), func(inv *Invocation) error {
		return account.New(inv.Env(id)).ExtendTTL()
	})
	require.NoError(t, err)

	advance(t, h, 99) // seq 160
	seq := h.Ledger().Current()
	assert.NoError(t, h.RequireAuth(context.Background(), id, signEntry(t, h, key, 1, seq, transferOps())))

	advance(t, h, 1) // seq 161 > 61 + 99
	seq = h.Ledger().Current()
	err = h.RequireAuth(context.Background(), id, signEntry(t, h, key, 2, seq, transferOps()))
	assert.ErrorIs(t, err, ErrEntryArchived)
}

func TestRequireAuth_UnknownContract(t *testing.T) {
	h := newTestHost(t)
	err := h.RequireAuth(context.Background(), types.ContractID{0x42}, AuthEntry{SignatureExpiration: 5})
	assert.ErrorIs(t, err, ErrContractNotFound)
}

// reentrantAccount 在校验期间再次请求自身授权
type reentrantAccount struct {
	inv   **Invocation
	id    *types.ContractID
	entry AuthEntry
}

func (a reentrantAccount) CheckAuth([]byte, types.RawClaim, types.AuthContext) error {
	return (*a.inv).RequireAuth(*a.id, a.entry)
}

func TestRequireAuth_Reentrant(t *testing.T) {
	h := newTestHost(t)

	var (
		current *Invocation
		id      types.ContractID
	)
	entry := AuthEntry{Nonce: 1, SignatureExpiration: 10}
	factory := func(interfaces.Env) interfaces.CustomAccount {
		return reentrantAccount{inv: &current, id: &id, entry: entry}
	}

	_, err := h.RegisterCode("reentrant", factory)
	require.NoError(t, err)
	id, err = h.Deploy("reentrant", []byte("loop"))
	require.NoError(t, err)

	err = h.Invoke(context.Background(), func(inv *Invocation) error {
		current = inv
		err := inv.RequireAuth(id, entry)
		assert.Equal(t, 2, inv.AuthCalls())
		return err
	})
	assert.ErrorIs(t, err, ErrReentrantAuth)

	// 栈已弹出，其他调用不受影响
	_, err = h.RegisterCode("nop", nopFactory)
	require.NoError(t, err)
	other, err := h.Deploy("nop", []byte("other"))
	require.NoError(t, err)
	assert.NoError(t, h.RequireAuth(context.Background(), other, entry))
	t.Log("✅ 重入授权被拒绝")
}

func TestRequireAuth_PublishesEvents(t *testing.T) {
	bus := eventbus.NewBus()
	h, err := New(WithEngine(newTestEngine(t)), WithConfig(testConfig()), WithEventBus(bus))
	require.NoError(t, err)
	require.NoError(t, h.Start(context.Background()))
	t.Cleanup(func() { _ = h.Close() })

	authSub, err := bus.Subscribe(new(types.EvtAuthorization))
	require.NoError(t, err)
	defer authSub.Close()

	key := mustKey(t, signerPriv)
	id := deployAccount(t, h, key)

	entry := signEntry(t, h, key, 1, 20, transferOps())
	require.NoError(t, h.RequireAuth(context.Background(), id, entry))
	require.Error(t, h.RequireAuth(context.Background(), id, entry))

	accepted := (<-authSub.Out()).(types.EvtAuthorization)
	assert.True(t, accepted.Accepted)
	assert.Equal(t, key.Identity(), accepted.Signer)
	assert.Equal(t, id, accepted.Contract)

	rejected := (<-authSub.Out()).(types.EvtAuthorization)
	assert.False(t, rejected.Accepted)
	assert.Contains(t, rejected.Reason, "nonce")

	advance(t, h, 3)
	ledgerSub, err := bus.Subscribe(new(types.EvtLedgerAdvanced))
	require.NoError(t, err)
	defer ledgerSub.Close()
	assert.Equal(t, uint32(4), (<-ledgerSub.Out()).(types.EvtLedgerAdvanced).Ledger)
}
