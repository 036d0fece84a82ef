package coin

import "fmt"

const (
	// ContractName is the name of the redemption contract
	ContractName = "ccd_redeem"
	// ViewCoinEntrypoint returns the state of a single coin
	ViewCoinEntrypoint = ContractName + ".viewCoin"
	// RedeemEntrypoint marks a coin redeemed and transfers its amount
	RedeemEntrypoint = ContractName + ".redeem"
	// MaxContractEnergy is the energy ceiling for both the query and the update
	MaxContractEnergy uint64 = 30000
	// AccountAddressVersion is the base58check version byte of account addresses
	AccountAddressVersion byte = 1
)

// Schemas of the deployed module, base64 encoded, as the wallet expects them
const (
	ViewCoinParameterSchema   = "HiAAAAA="
	ViewCoinReturnValueSchema = "FAACAAAABgAAAGFtb3VudAoLAAAAaXNfcmVkZWVtZWQB"
	RedeemParameterSchema     = "FAADAAAACgAAAHB1YmxpY19rZXkeIAAAAAkAAABzaWduYXR1cmUeQAAAAAcAAABhY2NvdW50Cw=="
	IssueParameterSchema      = "FAABAAAABQAAAGNvaW5zEAIPHiAAAAAK"
)

// ContractAddress addresses a contract instance on chain
type ContractAddress struct {
	Index    uint64 `json:"index"`
	Subindex uint64 `json:"subindex"`
}

// RedeemContract is the redemption contract instance all coins are issued on
var RedeemContract = ContractAddress{Index: 6952, Subindex: 0}

func (a ContractAddress) String() string {
	return fmt.Sprintf("<%d,%d>", a.Index, a.Subindex)
}
