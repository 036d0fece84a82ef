package model

// CheckRequest represents request for POST /coin/check
type CheckRequest struct {
	Seed string `json:"seed"`
}

// RedeemRequest represents request for POST /coin/redeem
type RedeemRequest struct {
	Seed    string `json:"seed"`
	Account string `json:"account"`
}

// CoinResponse represents the redemption state returned by /coin endpoints
type CoinResponse struct {
	State        string `json:"state"`
	Answer       string `json:"answer,omitempty"`
	Message      string `json:"message,omitempty"`
	Error        string `json:"error,omitempty"`
	AmountMicro  uint64 `json:"amountMicroCCD,omitempty"`
	AmountCCD    string `json:"amountCCD,omitempty"`
	FiatValue    string `json:"fiatValue,omitempty"`
	FiatCurrency string `json:"fiatCurrency,omitempty"`
	IsRedeemed   bool   `json:"isRedeemed"`
	PublicKey    string `json:"publicKey,omitempty"`
	Account      string `json:"account,omitempty"`
	TxHash       string `json:"txHash,omitempty"`
}
