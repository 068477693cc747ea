package ethaccount

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-ethaccount/config"
	"github.com/dep2p/go-ethaccount/internal/account"
	"github.com/dep2p/go-ethaccount/internal/core/host"
	"github.com/dep2p/go-ethaccount/pkg/lib/crypto"
	"github.com/dep2p/go-ethaccount/pkg/types"
)

func testOps() types.AuthContext {
	return types.AuthContext{{
		Kind:     types.OperationContractCall,
		Contract: types.ContractID{0x01},
		Function: "transfer",
		Args:     [][]byte{[]byte("alice"), []byte("bob"), {0x0a}},
	}}
}

func startNode(t *testing.T, dir string, opts ...Option) *Node {
	t.Helper()
	opts = append([]Option{WithDataDir(dir)}, opts...)
	node, err := New(context.Background(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = node.Close() })
	return node
}

func TestNode_AuthorizeFlow(t *testing.T) {
	ctx := context.Background()
	node := startNode(t, t.TempDir())

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	// 未初始化
	_, err = node.Signer(ctx)
	assert.ErrorIs(t, err, account.ErrUnknownSigner)

	require.NoError(t, node.Init(ctx, key.Identity()))
	signer, err := node.Signer(ctx)
	require.NoError(t, err)
	assert.Equal(t, key.Identity(), signer)

	entry, err := node.NewAuthEntry(testOps())
	require.NoError(t, err)
	assert.Equal(t, node.Ledger()+node.Config().Ledger.SignatureValidity, entry.SignatureExpiration)

	require.NoError(t, SignEntry(key, node.NetworkPassphrase(), &entry))
	require.NoError(t, node.Authorize(ctx, entry))

	// 同一 nonce 不能重放
	assert.ErrorIs(t, node.Authorize(ctx, entry), host.ErrNonceReused)
	t.Log("✅ 授权流程通过")
}

func TestNode_RejectsOtherSigner(t *testing.T) {
	ctx := context.Background()
	node := startNode(t, t.TempDir())

	owner, err := crypto.GenerateKey()
	require.NoError(t, err)
	other, err := crypto.GenerateKey()
	require.NoError(t, err)
	require.NoError(t, node.Init(ctx, owner.Identity()))

	entry, err := node.NewAuthEntry(testOps())
	require.NoError(t, err)
	require.NoError(t, SignEntry(other, node.NetworkPassphrase(), &entry))
	assert.ErrorIs(t, node.Authorize(ctx, entry), account.ErrUnauthorizedSigner)
}

func TestNode_LeasesAndExtend(t *testing.T) {
	ctx := context.Background()
	node := startNode(t, t.TempDir())

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	require.NoError(t, node.Init(ctx, key.Identity()))

	maxTTL := node.Config().Ledger.MaxTTL()
	report, err := node.Leases()
	require.NoError(t, err)
	require.NotNil(t, report.Entry)
	assert.Equal(t, maxTTL, report.Entry.TTL)
	assert.Equal(t, maxTTL, report.Instance.TTL)
	assert.Equal(t, maxTTL, report.Code.TTL)
	assert.Equal(t, maxTTL, report.Deployment.TTL)

	_, err = node.AdvanceLedger(ctx, 1000)
	require.NoError(t, err)
	report, err = node.Leases()
	require.NoError(t, err)
	assert.Equal(t, maxTTL-1000, report.Instance.TTL)

	require.NoError(t, node.ExtendTTL(ctx))
	report, err = node.Leases()
	require.NoError(t, err)
	assert.Equal(t, maxTTL, report.Instance.TTL)
	assert.Equal(t, maxTTL, report.Entry.TTL)
}

func TestNode_StatePersists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	first, err := New(ctx, WithDataDir(dir))
	require.NoError(t, err)
	contract := first.ContractID()
	require.NoError(t, first.Init(ctx, key.Identity()))
	_, err = first.AdvanceLedger(ctx, 5)
	require.NoError(t, err)
	require.NoError(t, first.Close())
	assert.NoError(t, first.Close(), "重复关闭应无操作")

	second := startNode(t, dir)
	assert.Equal(t, contract, second.ContractID())
	assert.Equal(t, uint32(6), second.Ledger())

	signer, err := second.Signer(ctx)
	require.NoError(t, err)
	assert.Equal(t, key.Identity(), signer)
}

func TestNode_SaltSelectsContract(t *testing.T) {
	dir := t.TempDir()
	a := startNode(t, filepath.Join(dir, "a"))
	b := startNode(t, filepath.Join(dir, "b"), WithSalt("treasury"))
	assert.NotEqual(t, a.ContractID(), b.ContractID())

	_, err := New(context.Background(), WithDataDir(dir), WithSalt(""))
	assert.ErrorIs(t, err, ErrEmptySalt)
}

func TestNode_Deployments(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := New(ctx, WithDataDir(dir))
	require.NoError(t, err)
	defaultID := first.ContractID()
	require.NoError(t, first.Close())

	node := startNode(t, dir, WithSalt("treasury"))
	deps, err := node.Deployments()
	require.NoError(t, err)
	require.Len(t, deps, 2)

	ids := []types.ContractID{deps[0].Contract, deps[1].Contract}
	assert.ElementsMatch(t, []types.ContractID{defaultID, node.ContractID()}, ids)
	for _, d := range deps {
		assert.Equal(t, AccountCodeName, d.CodeName)
	}
}

func TestNode_InvalidConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Storage = cfg.Storage.WithDataDir(t.TempDir())
	cfg.Ledger.NetworkPassphrase = ""

	_, err := New(context.Background(), WithConfig(cfg))
	assert.Error(t, err)
}

func TestSignEntry_NilKey(t *testing.T) {
	var entry AuthEntry
	assert.ErrorIs(t, SignEntry(nil, "net", &entry), ErrNilKey)
}

func TestVersionInfo(t *testing.T) {
	GitCommit = "0123456789abcdef"
	defer func() { GitCommit = "" }()
	assert.Equal(t, "ethaccount "+Version+" (01234567)", VersionInfo())
}

func TestNode_Events(t *testing.T) {
	ctx := context.Background()
	node := startNode(t, t.TempDir())

	initSub, err := node.Subscribe(new(types.EvtAccountInitialized))
	require.NoError(t, err)
	authSub, err := node.Subscribe(new(types.EvtAuthorization))
	require.NoError(t, err)
	extendSub, err := node.Subscribe(new(types.EvtLeasesExtended))
	require.NoError(t, err)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	require.NoError(t, node.Init(ctx, key.Identity()))
	initEvt := (<-initSub.Out()).(types.EvtAccountInitialized)
	assert.Equal(t, key.Identity(), initEvt.Signer)
	assert.Equal(t, node.ContractID(), initEvt.Contract)

	entry, err := node.NewAuthEntry(testOps())
	require.NoError(t, err)
	require.NoError(t, SignEntry(key, node.NetworkPassphrase(), &entry))
	require.NoError(t, node.Authorize(ctx, entry))
	assert.True(t, (<-authSub.Out()).(types.EvtAuthorization).Accepted)

	require.NoError(t, node.ExtendTTL(ctx))
	assert.Equal(t, node.ContractID(), (<-extendSub.Out()).(types.EvtLeasesExtended).Contract)
}
