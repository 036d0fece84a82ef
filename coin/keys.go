package coin

import (
	"crypto/ed25519"
	"encoding/hex"

	"github.com/gagliardetto/solana-go"
)

// KeyPair is the ed25519 key pair of a coin.
// It is derived on demand from the seed and never persisted.
type KeyPair struct {
	PublicKey solana.PublicKey
	// SecretKey is the 64-byte expanded key (seed || public key)
	SecretKey solana.PrivateKey
}

// DeriveKeys derives the coin key pair from its seed using standard ed25519 seed expansion.
// The same seed always yields the same key pair.
func DeriveKeys(seed Seed) KeyPair {
	secret := solana.PrivateKey(ed25519.NewKeyFromSeed(seed[:]))
	return KeyPair{
		PublicKey: secret.PublicKey(),
		SecretKey: secret,
	}
}

// PublicKeyHex returns the public key as lowercase hex, the form the contract indexes coins by
func (k KeyPair) PublicKeyHex() string {
	return hex.EncodeToString(k.PublicKey[:])
}

// Wipe zeroes the secret key
func (k KeyPair) Wipe() {
	clear(k.SecretKey)
}
