package coin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// SeedSize is the decoded length of a coin seed in bytes
const SeedSize = 32

var (
	// ErrInvalidEncoding is returned when the seed contains characters outside the base58 alphabet
	ErrInvalidEncoding = errors.New("seed is not valid base58")
	// ErrInvalidLength is returned when the seed does not decode to exactly 32 bytes
	ErrInvalidLength = errors.New("seed must decode to 32 bytes")
)

// Seed is the 32-byte secret printed on a coin
type Seed [SeedSize]byte

// DecodeSeed decodes a seed string from manual entry or a QR scan.
// The seed is raw base58 without a checksum.
func DecodeSeed(seedString string) (Seed, error) {
	var seed Seed

	s := strings.TrimSpace(seedString)
	if s == "" {
		return seed, ErrInvalidEncoding
	}

	raw, err := base58.Decode(s)
	if err != nil {
		return seed, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	defer clear(raw)

	if len(raw) != SeedSize {
		return seed, fmt.Errorf("%w: got %d bytes", ErrInvalidLength, len(raw))
	}

	copy(seed[:], raw)
	return seed, nil
}

// EncodeSeed returns the base58 text printed on the coin label
func EncodeSeed(seed Seed) string {
	return base58.Encode(seed[:])
}
