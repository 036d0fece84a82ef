package coin

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
)

// ErrAccountDecode is returned when an account address fails base58check validation
var ErrAccountDecode = errors.New("invalid account address")

// SignedPayload is the signature of a coin key over a destination account
type SignedPayload struct {
	// Message is the hex of the decoded account bytes that were signed
	Message      string `json:"message"`
	PublicKeyHex string `json:"publicKey"`
	SignatureHex string `json:"signature"`
}

// DecodeAccountAddress decodes a base58check account address into its 32 raw bytes
func DecodeAccountAddress(address string) ([accountSize]byte, error) {
	var account [accountSize]byte

	payload, version, err := base58.CheckDecode(address)
	if err != nil {
		return account, fmt.Errorf("%w: %v", ErrAccountDecode, err)
	}
	if version != AccountAddressVersion {
		return account, fmt.Errorf("%w: unexpected version byte %d", ErrAccountDecode, version)
	}
	if len(payload) != accountSize {
		return account, fmt.Errorf("%w: expected %d bytes, got %d", ErrAccountDecode, accountSize, len(payload))
	}

	copy(account[:], payload)
	return account, nil
}

// EncodeAccountAddress returns the display form of raw account bytes
func EncodeAccountAddress(account [accountSize]byte) string {
	return base58.CheckEncode(account[:], AccountAddressVersion)
}

// SignAccount signs the decoded bytes of account with the coin key.
// The contract verifies this signature before paying the coin out to account.
func SignAccount(keys KeyPair, account string) (*SignedPayload, error) {
	accountBytes, err := DecodeAccountAddress(account)
	if err != nil {
		return nil, err
	}

	signature, err := keys.SecretKey.Sign(accountBytes[:])
	if err != nil {
		return nil, fmt.Errorf("failed to sign account: %w", err)
	}

	return &SignedPayload{
		Message:      hex.EncodeToString(accountBytes[:]),
		PublicKeyHex: keys.PublicKeyHex(),
		SignatureHex: hex.EncodeToString(signature[:]),
	}, nil
}

// RedeemParameter builds the redeem entrypoint parameter from the payload
func (p *SignedPayload) RedeemParameter() (RedeemParameter, error) {
	var param RedeemParameter
	fields := []struct {
		name string
		hex  string
		dst  []byte
	}{
		{"public key", p.PublicKeyHex, param.PublicKey[:]},
		{"signature", p.SignatureHex, param.Signature[:]},
		{"account", p.Message, param.Account[:]},
	}
	for _, f := range fields {
		raw, err := hex.DecodeString(f.hex)
		if err != nil {
			return param, fmt.Errorf("invalid %s hex: %w", f.name, err)
		}
		if len(raw) != len(f.dst) {
			return param, fmt.Errorf("invalid %s length: expected %d bytes, got %d", f.name, len(f.dst), len(raw))
		}
		copy(f.dst, raw)
	}
	return param, nil
}
