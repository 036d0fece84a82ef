package coin

import "fmt"

// Reject codes of the redemption contract
const (
	RejectCoinNotFound        int32 = -2
	RejectCoinAlreadyRedeemed int32 = -3
)

const unspecifiedRejectReason = "Unspecified error."

var rejectReasons = map[int32]string{
	RejectCoinNotFound:        "Coin does not exist.",
	RejectCoinAlreadyRedeemed: "Coin has already been redeemed.",
}

// RejectReason returns the human-readable reason for a contract reject code
func RejectReason(code int32) string {
	if reason, ok := rejectReasons[code]; ok {
		return reason
	}
	return unspecifiedRejectReason
}

// RejectError is a redemption transaction rejected on chain
type RejectError struct {
	Code int32
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("transaction rejected (code %d): %s", e.Code, RejectReason(e.Code))
}

// TransportError is a failure talking to the broadcast capability
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "transport failure: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
