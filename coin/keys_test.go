package coin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKeys(t *testing.T) {
	tests := []struct {
		seed string
		want string
	}{
		{testSeed, testPublicKey},
		{zeroSeed, zeroPublicKey},
	}

	for _, tt := range tests {
		seed, err := DecodeSeed(tt.seed)
		require.NoError(t, err)

		keys := DeriveKeys(seed)
		assert.Equal(t, tt.want, keys.PublicKeyHex())
		assert.Len(t, keys.SecretKey, 64)
		assert.Equal(t, seed[:], []byte(keys.SecretKey[:32]))
		assert.Equal(t, keys.PublicKey[:], []byte(keys.SecretKey[32:]))
	}
}

func TestDeriveKeysDeterministic(t *testing.T) {
	seed, err := DecodeSeed(testSeed)
	require.NoError(t, err)

	a := DeriveKeys(seed)
	b := DeriveKeys(seed)
	assert.Equal(t, a.PublicKey, b.PublicKey)
	assert.Equal(t, a.SecretKey, b.SecretKey)
}

func TestKeyPairWipe(t *testing.T) {
	seed, err := DecodeSeed(testSeed)
	require.NoError(t, err)

	keys := DeriveKeys(seed)
	keys.Wipe()
	assert.Equal(t, make([]byte, 64), []byte(keys.SecretKey))
}
