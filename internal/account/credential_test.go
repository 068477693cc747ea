package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-ethaccount/pkg/types"
)

func TestCredentialStore_ReadAbsent(t *testing.T) {
	store := NewCredentialStore(newFakeEnv())

	_, err := store.Read()
	assert.ErrorIs(t, err, ErrUnknownSigner)
}

func TestCredentialStore_InitializeOverwrite(t *testing.T) {
	env := newFakeEnv()
	store := NewCredentialStore(env)

	first := mustIdentity(t, signerAddr)
	second := mustIdentity(t, otherAddr)

	require.NoError(t, store.Initialize(first))
	got, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, first, got)

	require.NoError(t, store.Initialize(second))
	got, err = store.Read()
	require.NoError(t, err)
	assert.Equal(t, second, got)

	// 至多一个凭据
	assert.Len(t, env.storage.data, 1)
	assert.Equal(t, second[:], env.storage.data["pk"])
}

func TestCredentialStore_CorruptedValue(t *testing.T) {
	env := newFakeEnv()
	env.storage.data["pk"] = []byte{0x01, 0x02, 0x03}

	_, err := NewCredentialStore(env).Read()
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidLength)

	var lengthErr *types.LengthError
	require.ErrorAs(t, err, &lengthErr)
	assert.Equal(t, 20, lengthErr.Want)
	assert.Equal(t, 3, lengthErr.Got)
}

func TestCredentialStore_HostFailurePropagates(t *testing.T) {
	env := newFakeEnv()
	env.storage.setErr = errHostDown

	err := NewCredentialStore(env).Initialize(mustIdentity(t, signerAddr))
	assert.ErrorIs(t, err, errHostDown)

	env.storage.setErr = nil
	env.storage.getErr = errHostDown
	_, err = NewCredentialStore(env).Read()
	assert.ErrorIs(t, err, errHostDown)
	assert.NotErrorIs(t, err, ErrUnknownSigner)
}

func TestCredentialStore_ExtendLifetime(t *testing.T) {
	env := newFakeEnv()
	store := NewCredentialStore(env)
	require.NoError(t, store.Initialize(mustIdentity(t, signerAddr)))

	require.NoError(t, store.ExtendLifetime())

	assert.Equal(t, uint32(testMaxTTL), env.storage.ttl["pk"])
	assert.Equal(t, uint32(testMaxTTL), env.deployer.deployment)
	assert.Equal(t, uint32(testMaxTTL), env.deployer.code)
	assert.Equal(t, uint32(testMaxTTL), env.deployer.instance)
}

func TestCredentialStore_ExtendLifetimeMonotonic(t *testing.T) {
	env := newFakeEnv()
	store := NewCredentialStore(env)
	require.NoError(t, store.Initialize(mustIdentity(t, signerAddr)))

	prev := [4]uint32{}
	for i := 0; i < 5; i++ {
		require.NoError(t, store.ExtendLifetime())
		cur := [4]uint32{env.storage.ttl["pk"], env.deployer.deployment, env.deployer.code, env.deployer.instance}
		for j := range cur {
			assert.GreaterOrEqual(t, cur[j], prev[j])
			assert.Equal(t, uint32(testMaxTTL), cur[j])
		}
		prev = cur

		// 模拟账本推进消耗租约
		env.storage.ttl["pk"] -= 1000
		env.deployer.code -= 1000
	}
}

func TestCredentialStore_ExtendLifetimeFailure(t *testing.T) {
	env := newFakeEnv()
	store := NewCredentialStore(env)
	require.NoError(t, store.Initialize(mustIdentity(t, signerAddr)))

	env.deployer.err = errHostDown
	assert.ErrorIs(t, store.ExtendLifetime(), errHostDown)
}
