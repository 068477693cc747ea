package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	t.Run("EIP55", func(t *testing.T) {
		// EIP-55 参考向量
		vectors := []string{
			"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
			"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
			"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
			"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
		}
		for _, v := range vectors {
			id, err := ParseIdentity(v)
			require.NoError(t, err)
			assert.Equal(t, v, id.String())
		}
	})

	t.Run("ParseCaseInsensitive", func(t *testing.T) {
		a, err := ParseIdentity("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
		require.NoError(t, err)
		b, err := ParseIdentity("5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED")
		require.NoError(t, err)
		assert.True(t, a.Equal(b))
		assert.Equal(t, "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", a.Hex())
	})

	t.Run("FromBytes_WrongLength", func(t *testing.T) {
		_, err := IdentityFromBytes(make([]byte, 19))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidLength))

		var lenErr *LengthError
		require.True(t, errors.As(err, &lenErr))
		assert.Equal(t, "identity", lenErr.Field)
		assert.Equal(t, 20, lenErr.Want)
		assert.Equal(t, 19, lenErr.Got)
	})

	t.Run("ParseInvalidHex", func(t *testing.T) {
		_, err := ParseIdentity("0xzz")
		assert.ErrorIs(t, err, ErrInvalidHex)
	})

	t.Run("TextRoundTrip", func(t *testing.T) {
		id, err := ParseIdentity("0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359")
		require.NoError(t, err)

		text, err := id.MarshalText()
		require.NoError(t, err)

		var decoded Identity
		require.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, id, decoded)
	})

	t.Run("IsEmpty", func(t *testing.T) {
		assert.True(t, EmptyIdentity.IsEmpty())
		assert.False(t, Identity{1}.IsEmpty())
	})
}
