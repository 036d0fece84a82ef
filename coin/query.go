package coin

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrCoinNotFound is returned when the contract has no record for the coin key
	ErrCoinNotFound = errors.New("coin not found")
	// ErrDeserializationFailed is returned when the coin state cannot be decoded
	ErrDeserializationFailed = errors.New("failed to deserialize coin state")
	// ErrMalformedReturnValue is wrapped by a LedgerQuerier when a successful query returns an undecodable value
	ErrMalformedReturnValue = errors.New("malformed return value")
)

// ContractInvocation is a read-only contract query
type ContractInvocation struct {
	Contract  ContractAddress
	Method    string
	Parameter []byte
	Energy    uint64
}

// InvokeResult is the outcome of a contract query
type InvokeResult struct {
	Success     bool
	ReturnValue []byte
}

// LedgerQuerier runs read-only contract queries against the chain
type LedgerQuerier interface {
	InvokeContract(ctx context.Context, inv ContractInvocation) (*InvokeResult, error)
}

// AnswerKind classifies a seed
type AnswerKind int

const (
	AnswerInvalidEncoding AnswerKind = iota + 1
	AnswerInvalidLength
	AnswerCoinNotFound
	AnswerDeserializationFailed
	AnswerPristineCoin
	AnswerRedeemedCoin
)

func (k AnswerKind) String() string {
	switch k {
	case AnswerInvalidEncoding:
		return "invalid_encoding"
	case AnswerInvalidLength:
		return "invalid_length"
	case AnswerCoinNotFound:
		return "coin_not_found"
	case AnswerDeserializationFailed:
		return "deserialization_failed"
	case AnswerPristineCoin:
		return "pristine"
	case AnswerRedeemedCoin:
		return "redeemed"
	default:
		return "unknown"
	}
}

// SeedAnswer is the classification of a seed. Coin is set only for pristine and
// redeemed coins, Err only for the failure kinds.
type SeedAnswer struct {
	Kind AnswerKind
	Coin CoinRecord
	Err  error
}

// Message returns the user-facing text for a failed classification
func (a SeedAnswer) Message() string {
	switch a.Kind {
	case AnswerInvalidEncoding, AnswerInvalidLength:
		return "Provided seed is invalid."
	case AnswerCoinNotFound:
		return "Could not find the coin."
	case AnswerDeserializationFailed:
		return "Could not read the coin state."
	default:
		return ""
	}
}

func failedAnswer(kind AnswerKind, err error) SeedAnswer {
	return SeedAnswer{Kind: kind, Err: err}
}

func coinAnswer(rec CoinRecord) SeedAnswer {
	if rec.IsRedeemed {
		return SeedAnswer{Kind: AnswerRedeemedCoin, Coin: rec}
	}
	return SeedAnswer{Kind: AnswerPristineCoin, Coin: rec}
}

// ClassifyCoin looks up the coin with the given public key and classifies it.
// Every failure of the query capability is folded into the answer.
func ClassifyCoin(ctx context.Context, publicKeyHex string, ledger LedgerQuerier) SeedAnswer {
	param, err := EncodeViewCoinParameter(publicKeyHex)
	if err != nil {
		return failedAnswer(AnswerCoinNotFound, fmt.Errorf("%w: %v", ErrCoinNotFound, err))
	}

	res, err := ledger.InvokeContract(ctx, ContractInvocation{
		Contract:  RedeemContract,
		Method:    ViewCoinEntrypoint,
		Parameter: param,
		Energy:    MaxContractEnergy,
	})
	if errors.Is(err, ErrMalformedReturnValue) {
		return failedAnswer(AnswerDeserializationFailed, fmt.Errorf("%w: %v", ErrDeserializationFailed, err))
	}
	if err != nil {
		return failedAnswer(AnswerCoinNotFound, fmt.Errorf("%w: query failed: %v", ErrCoinNotFound, err))
	}
	if res == nil || !res.Success || len(res.ReturnValue) == 0 {
		return failedAnswer(AnswerCoinNotFound, ErrCoinNotFound)
	}

	rec, err := DecodeCoinRecord(res.ReturnValue)
	if err != nil {
		return failedAnswer(AnswerDeserializationFailed, fmt.Errorf("%w: %v", ErrDeserializationFailed, err))
	}
	return coinAnswer(rec)
}

// CheckSeed decodes a seed string and classifies the coin it belongs to
func CheckSeed(ctx context.Context, seedString string, ledger LedgerQuerier) SeedAnswer {
	seed, err := DecodeSeed(seedString)
	if err != nil {
		if errors.Is(err, ErrInvalidLength) {
			return failedAnswer(AnswerInvalidLength, err)
		}
		return failedAnswer(AnswerInvalidEncoding, err)
	}

	keys := DeriveKeys(seed)
	defer keys.Wipe()
	return ClassifyCoin(ctx, keys.PublicKeyHex(), ledger)
}
