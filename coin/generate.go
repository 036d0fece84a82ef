package coin

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/skip2/go-qrcode"
)

// GeneratedCoin is a freshly issued coin. Seed is secret and goes on the inside of the label.
type GeneratedCoin struct {
	Seed         string `json:"seed"`
	PublicKeyHex string `json:"publicKey"`
	Amount       uint64 `json:"amount"`
}

// GenerateCoins draws a random seed for each amount
func GenerateCoins(amounts []uint64) ([]GeneratedCoin, error) {
	return generateCoins(rand.Reader, amounts)
}

func generateCoins(random io.Reader, amounts []uint64) ([]GeneratedCoin, error) {
	coins := make([]GeneratedCoin, 0, len(amounts))
	for i, amount := range amounts {
		var seed Seed
		if _, err := io.ReadFull(random, seed[:]); err != nil {
			return nil, fmt.Errorf("failed to generate seed %d: %w", i, err)
		}

		keys := DeriveKeys(seed)
		coins = append(coins, GeneratedCoin{
			Seed:         EncodeSeed(seed),
			PublicKeyHex: keys.PublicKeyHex(),
			Amount:       amount,
		})
		keys.Wipe()
		clear(seed[:])
	}
	return coins, nil
}

// IssueJSON is the issue parameter in the JSON form accepted by the contract tooling:
// {"coins": [["<public key hex>", "<amount>"], ...]}
type IssueJSON struct {
	Coins [][2]string `json:"coins"`
}

// IssueParameters returns the issue parameter of coins in JSON and binary form
func IssueParameters(coins []GeneratedCoin) (*IssueJSON, []byte, error) {
	js := &IssueJSON{Coins: make([][2]string, 0, len(coins))}
	issued := make([]IssuedCoin, 0, len(coins))
	for _, c := range coins {
		key, err := hex.DecodeString(c.PublicKeyHex)
		if err != nil || len(key) != publicKeySize {
			return nil, nil, fmt.Errorf("invalid public key %q", c.PublicKeyHex)
		}
		var ic IssuedCoin
		copy(ic.PublicKey[:], key)
		ic.Amount = c.Amount
		issued = append(issued, ic)
		js.Coins = append(js.Coins, [2]string{c.PublicKeyHex, strconv.FormatUint(c.Amount, 10)})
	}

	bin, err := EncodeIssueParameter(issued)
	if err != nil {
		return nil, nil, err
	}
	return js, bin, nil
}

// QRCodePNG renders the seed as a QR code PNG
func QRCodePNG(seed string, size int) ([]byte, error) {
	qr, err := qrcode.New(seed, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}
	return png, nil
}

// QRCodeBase64 renders the seed as a base64 encoded QR code PNG
func QRCodeBase64(seed string) (string, error) {
	png, err := QRCodePNG(seed, 256)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
