package model

// BatchFile represents the encrypted seed batch file (.ccb)
type BatchFile struct {
	Network    string `json:"network"`
	Contract   string `json:"contract"`
	Count      int    `json:"count"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// BatchCoin is one coin of a decrypted batch
type BatchCoin struct {
	Seed      string `json:"seed"`
	PublicKey string `json:"publicKey"`
	Amount    uint64 `json:"amount"` // micro CCD
}

// BatchData represents decrypted batch data
type BatchData struct {
	Coins     []BatchCoin `json:"coins"`
	CreatedAt string      `json:"createdAt"`
}
