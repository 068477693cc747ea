package types

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	raw := "0x" + strings.Repeat("ab", HashSize)

	h, err := ParseHash(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, h.String())
	assert.False(t, h.IsEmpty())
	assert.True(t, EmptyHash.IsEmpty())

	_, err = ParseHash("0xabcd")
	assert.True(t, errors.Is(err, ErrInvalidLength))

	_, err = HashFromBytes(make([]byte, 31))
	assert.ErrorIs(t, err, ErrInvalidLength)

	p, err := ParseHash("0xeb5afeca2ffd697329dc3454f38df97b2ce104819a1e523e388a96fb9d41a10d")
	require.NoError(t, err)
	assert.Equal(t, byte(0xeb), p[0])
	assert.Equal(t, byte(0x0d), p[31])

	_, err = ParseHash("zz")
	assert.True(t, errors.Is(err, ErrInvalidHex))

	// 文本编解码
	text, err := h.MarshalText()
	require.NoError(t, err)
	var back Hash
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, h, back)
}

func TestContractID(t *testing.T) {
	id := ContractID{0xca, 0xfe}

	assert.Equal(t, "cafe0000", id.ShortString())
	assert.Equal(t, "deadbeef", ContractID{0xde, 0xad, 0xbe, 0xef}.ShortString())

	text, err := id.MarshalText()
	require.NoError(t, err)
	var decoded ContractID
	require.NoError(t, decoded.UnmarshalText(text))
	assert.Equal(t, id, decoded)

	assert.True(t, EmptyContractID.IsEmpty())

	parsed, err := ParseContractID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ContractIDFromBytes(make([]byte, 31))
	var le *LengthError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ContractIDSize, le.Want)
	assert.Equal(t, 31, le.Got)
}

func TestAuthContextJSON(t *testing.T) {
	ops := AuthContext{{
		Kind:     OperationContractCall,
		Contract: ContractID{0x70, 0x6b},
		Function: "transfer",
		Args:     [][]byte{[]byte("from"), {0x01, 0xf4}},
	}}

	data, err := json.Marshal(ops)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"function":"transfer"`)
	assert.Contains(t, string(data), ops[0].Contract.String())

	var back AuthContext
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, ops, back)
}

func TestOperationKindString(t *testing.T) {
	assert.Equal(t, "contract_call", OperationContractCall.String())
	assert.Equal(t, "create_contract", OperationCreateContract.String())
	assert.Equal(t, "unknown", OperationKind(9).String())
}
