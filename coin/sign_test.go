package coin

import (
	"crypto/ed25519"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	onesAccount   = "2xBpaHottqhwFZURMZW4uZduQvpxNDSy46iXMYs9kceNGaPpZX"
	onesSignature = "0bcfe4d2e2066b05ec8486ca41016f435d64b1a5fd39f76d9de30d2615a5223367dd99ad1f946cbbeb7027619ec152b5df96ac9472415011e583025e119fcb09"

	testAccount          = "4r81HqikiXBfwxjNJKJAWdw6an2jq4aGSZZAy8fM3fQ9a7x9mH"
	testAccountHex       = "fa9f7e089a4a3be1970f135153ff39b611bafd4f2f05c890ae56beb6f4fb14f0"
	testAccountSignature = "ac4b97a1448b97ade8939c8852698c6290efb29fd6e20e0f22c184d86083103054aad148d764396ff793036c18f1b969f71d3a292ddf9ccb0ba160ff61834f07"
	badChecksumAccount   = "4r81HqikiXBfwxjNJKJAWdw6an2jq4aGSZZAy8fM3fQ9a7x9mj"
)

func testKeys(t *testing.T) KeyPair {
	t.Helper()
	seed, err := DecodeSeed(testSeed)
	require.NoError(t, err)
	return DeriveKeys(seed)
}

func TestDecodeAccountAddress(t *testing.T) {
	account, err := DecodeAccountAddress(testAccount)
	require.NoError(t, err)
	assert.Equal(t, testAccountHex, hex.EncodeToString(account[:]))

	var ones [32]byte
	for i := range ones {
		ones[i] = 1
	}
	account, err = DecodeAccountAddress(onesAccount)
	require.NoError(t, err)
	assert.Equal(t, ones, account)
	assert.Equal(t, onesAccount, EncodeAccountAddress(ones))
}

func TestDecodeAccountAddressErrors(t *testing.T) {
	var short [31]byte
	tests := []struct {
		name    string
		address string
	}{
		{"empty", ""},
		{"bad checksum", badChecksumAccount},
		{"invalid characters", "0OIl" + testAccount[4:]},
		{"seed is not an account", testSeed},
		{"wrong length", base58.CheckEncode(short[:], AccountAddressVersion)},
		{"wrong version", base58.CheckEncode(make([]byte, 32), 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAccountAddress(tt.address)
			assert.ErrorIs(t, err, ErrAccountDecode)
		})
	}
}

func TestSignAccount(t *testing.T) {
	keys := testKeys(t)

	tests := []struct {
		account   string
		message   string
		signature string
	}{
		{testAccount, testAccountHex, testAccountSignature},
		{onesAccount, strings.Repeat("01", 32), onesSignature},
	}

	for _, tt := range tests {
		payload, err := SignAccount(keys, tt.account)
		require.NoError(t, err)

		assert.Equal(t, tt.message, payload.Message)
		assert.Equal(t, testPublicKey, payload.PublicKeyHex)
		assert.Equal(t, tt.signature, payload.SignatureHex)

		msg, _ := hex.DecodeString(payload.Message)
		sig, _ := hex.DecodeString(payload.SignatureHex)
		assert.True(t, ed25519.Verify(ed25519.PublicKey(keys.PublicKey[:]), msg, sig))
	}
}

func TestSignAccountSignsDecodedBytes(t *testing.T) {
	keys := testKeys(t)

	payload, err := SignAccount(keys, testAccount)
	require.NoError(t, err)

	sig, _ := hex.DecodeString(payload.SignatureHex)
	assert.False(t, ed25519.Verify(ed25519.PublicKey(keys.PublicKey[:]), []byte(testAccount), sig))
}

func TestSignAccountInvalidAccount(t *testing.T) {
	payload, err := SignAccount(testKeys(t), badChecksumAccount)
	assert.ErrorIs(t, err, ErrAccountDecode)
	assert.Nil(t, payload)
}

func TestSignedPayloadRedeemParameter(t *testing.T) {
	payload, err := SignAccount(testKeys(t), testAccount)
	require.NoError(t, err)

	param, err := payload.RedeemParameter()
	require.NoError(t, err)
	assert.Equal(t, testPublicKey, hex.EncodeToString(param.PublicKey[:]))
	assert.Equal(t, testAccountSignature, hex.EncodeToString(param.Signature[:]))
	assert.Equal(t, testAccountHex, hex.EncodeToString(param.Account[:]))

	payload.SignatureHex = payload.SignatureHex[:126]
	_, err = payload.RedeemParameter()
	assert.Error(t, err)
}
