package coin

import (
	"bytes"
	"encoding/hex"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// Contract values are serialized little-endian, fixed width, without padding.
const (
	publicKeySize = 32
	signatureSize = 64
	accountSize   = 32
)

// CoinRecord is the contract's view of a coin
type CoinRecord struct {
	// Amount in micro CCD
	Amount     uint64 `json:"amount"`
	IsRedeemed bool   `json:"is_redeemed"`
}

// EncodeViewCoinParameter serializes a hex public key as the viewCoin parameter
func EncodeViewCoinParameter(publicKeyHex string) ([]byte, error) {
	key, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid public key hex: %w", err)
	}
	if len(key) != publicKeySize {
		return nil, fmt.Errorf("invalid public key length: expected %d bytes, got %d", publicKeySize, len(key))
	}
	return key, nil
}

// DecodeCoinRecord deserializes the viewCoin return value
func DecodeCoinRecord(data []byte) (CoinRecord, error) {
	var rec CoinRecord

	dec := bin.NewBinDecoder(data)
	amount, err := dec.ReadUint64(bin.LE)
	if err != nil {
		return rec, fmt.Errorf("failed to read amount: %w", err)
	}

	flag, err := dec.ReadByte()
	if err != nil {
		return rec, fmt.Errorf("failed to read redeemed flag: %w", err)
	}
	switch flag {
	case 0:
		rec.IsRedeemed = false
	case 1:
		rec.IsRedeemed = true
	default:
		return rec, fmt.Errorf("invalid bool byte 0x%02x", flag)
	}

	if dec.Remaining() != 0 {
		return rec, fmt.Errorf("%d trailing bytes after coin state", dec.Remaining())
	}

	rec.Amount = amount
	return rec, nil
}

// EncodeCoinRecord serializes a coin record the way the contract returns it
func EncodeCoinRecord(rec CoinRecord) []byte {
	buf := new(bytes.Buffer)
	enc := bin.NewBinEncoder(buf)
	// Writes to a bytes.Buffer cannot fail
	_ = enc.WriteUint64(rec.Amount, bin.LE)
	_ = enc.WriteBool(rec.IsRedeemed)
	return buf.Bytes()
}

// RedeemParameter is the parameter of the redeem entrypoint
type RedeemParameter struct {
	PublicKey [publicKeySize]byte
	Signature [signatureSize]byte
	Account   [accountSize]byte
}

// MarshalBinary serializes the parameter in field order
func (p RedeemParameter) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBinEncoder(buf)
	for _, field := range [][]byte{p.PublicKey[:], p.Signature[:], p.Account[:]} {
		if err := enc.WriteBytes(field, false); err != nil {
			return nil, fmt.Errorf("failed to write redeem parameter: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// IssuedCoin is one entry of the issue parameter
type IssuedCoin struct {
	PublicKey [publicKeySize]byte
	Amount    uint64
}

// EncodeIssueParameter serializes the coins of a batch as the issue parameter.
// The list length is a u32 prefix.
func EncodeIssueParameter(coins []IssuedCoin) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBinEncoder(buf)
	if err := enc.WriteUint32(uint32(len(coins)), bin.LE); err != nil {
		return nil, fmt.Errorf("failed to write coin count: %w", err)
	}
	for _, c := range coins {
		if err := enc.WriteBytes(c.PublicKey[:], false); err != nil {
			return nil, fmt.Errorf("failed to write coin key: %w", err)
		}
		if err := enc.WriteUint64(c.Amount, bin.LE); err != nil {
			return nil, fmt.Errorf("failed to write coin amount: %w", err)
		}
	}
	return buf.Bytes(), nil
}
