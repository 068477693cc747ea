package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-ethaccount/pkg/lib/crypto"
	"github.com/dep2p/go-ethaccount/pkg/types"
)

type recordingHasher struct {
	inputs [][]byte
}

func (h *recordingHasher) Keccak256(data ...[]byte) types.Hash {
	var joined []byte
	for _, d := range data {
		joined = append(joined, d...)
	}
	h.inputs = append(h.inputs, joined)
	return crypto.Keccak256(joined)
}

func TestBuildDigest_Vector(t *testing.T) {
	got := BuildDigest(crypto.Keccak256Hasher{}, mustHash(t, scenarioPayload))
	assert.Equal(t, mustHash(t, scenarioDigest), got)
}

func TestBuildDigest_Layout(t *testing.T) {
	h := &recordingHasher{}
	payload := mustHash(t, scenarioPayload)

	BuildDigest(h, payload)

	require.Len(t, h.inputs, 2)
	assert.Equal(t, payload[:], h.inputs[0])

	second := h.inputs[1]
	require.Len(t, second, 60)
	assert.Equal(t, []byte(MessagePrefix), second[:28])
	authHash := crypto.Keccak256(payload[:])
	assert.Equal(t, authHash[:], second[28:])
}

func TestBuildDigest_MatchesClientSigning(t *testing.T) {
	payload := crypto.Keccak256([]byte("any payload"))
	assert.Equal(t, crypto.PersonalDigest(payload), BuildDigest(crypto.Keccak256Hasher{}, payload))
	assert.Equal(t, crypto.PersonalMessagePrefix, MessagePrefix)
}

func TestBuildDigest_Deterministic(t *testing.T) {
	p := mustHash(t, scenarioPayload)
	assert.Equal(t, BuildDigest(crypto.Keccak256Hasher{}, p), BuildDigest(crypto.Keccak256Hasher{}, p))

	q := p
	q[0] ^= 0x01
	assert.NotEqual(t, BuildDigest(crypto.Keccak256Hasher{}, p), BuildDigest(crypto.Keccak256Hasher{}, q))
}
