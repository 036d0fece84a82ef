package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/coin-redeem/coin"
	"github.com/AlexZinkM/coin-redeem/internal/common"
	"github.com/AlexZinkM/coin-redeem/internal/model"

	"go.uber.org/zap"
)

// RateSource provides the fiat price of one CCD
type RateSource interface {
	GetCCDRate(currency string) (float64, error)
}

// CoinHandler serves the redemption flow to the UI.
// Every request runs on a fresh state machine; nothing is kept between requests.
type CoinHandler struct {
	ledger      coin.LedgerQuerier
	broadcaster coin.Broadcaster
	rates       RateSource
	currency    string
	log         *zap.Logger
}

// NewCoinHandler creates a new CoinHandler. rates may be nil to disable fiat estimates.
func NewCoinHandler(ledger coin.LedgerQuerier, broadcaster coin.Broadcaster, rates RateSource, currency string, log *zap.Logger) *CoinHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CoinHandler{
		ledger:      ledger,
		broadcaster: broadcaster,
		rates:       rates,
		currency:    currency,
		log:         log,
	}
}

// Check handles POST /coin/check
// @Summary      Check coin seed
// @Description  Decodes the seed, derives the coin key and looks up the coin on chain
// @Tags         coin
// @Accept       json
// @Produce      json
// @Param        request  body      model.CheckRequest  true  "Coin seed"
// @Success      200      {object}  model.CoinResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /coin/check [post]
func (h *CoinHandler) Check(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "bad_request")
		return
	}

	machine := coin.NewMachine(h.ledger, h.broadcaster, coin.NewWalletAccount(), coin.WithLogger(h.log))
	defer machine.Close()

	snap := machine.Load(r.Context(), req.Seed)
	writeJSON(w, http.StatusOK, h.response(snap))
}

// Redeem handles POST /coin/redeem
// @Summary      Redeem coin
// @Description  Signs the account with the coin key, sends the redeem transaction from the account and waits for finalization
// @Tags         coin
// @Accept       json
// @Produce      json
// @Param        request  body      model.RedeemRequest  true  "Coin seed and destination account"
// @Success      200      {object}  model.CoinResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.CoinResponse
// @Router       /coin/redeem [post]
func (h *CoinHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.RedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "bad_request")
		return
	}

	wallet := coin.NewWalletAccount()
	machine := coin.NewMachine(h.ledger, h.broadcaster, wallet, coin.WithLogger(h.log))
	defer machine.Close()

	machine.Load(r.Context(), req.Seed)
	if req.Account != "" {
		wallet.Connect(req.Account)
	}

	snap, err := machine.Redeem(r.Context())
	switch {
	case errors.Is(err, coin.ErrNoAccount):
		writeError(w, http.StatusBadRequest, "account is required", "no_account")
		return
	case errors.Is(err, coin.ErrNotRedeemable):
		writeJSON(w, http.StatusConflict, h.response(snap))
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error(), "internal")
		return
	}

	writeJSON(w, http.StatusOK, h.response(snap))
}

func (h *CoinHandler) response(snap coin.Snapshot) model.CoinResponse {
	resp := model.CoinResponse{
		State:   snap.State.String(),
		Message: snap.Message,
	}
	if snap.Answer != 0 {
		resp.Answer = snap.Answer.String()
	}
	if snap.Err != nil {
		resp.Error = snap.Err.Error()
	}
	if snap.Coin != nil {
		resp.AmountMicro = snap.Coin.Amount
		resp.AmountCCD = common.DisplayCCD(snap.Coin.Amount)
		resp.IsRedeemed = snap.Coin.IsRedeemed
		h.addFiatValue(&resp, snap.Coin.Amount)
	}
	if snap.Redemption != nil {
		resp.PublicKey = snap.Redemption.PublicKeyHex
		resp.Account = snap.Redemption.Account
		resp.TxHash = snap.Redemption.TxHash
	}
	return resp
}

// addFiatValue adds the fiat estimate; a failing price source only loses the estimate
func (h *CoinHandler) addFiatValue(resp *model.CoinResponse, micro uint64) {
	if h.rates == nil {
		return
	}
	rate, err := h.rates.GetCCDRate(h.currency)
	if err != nil {
		h.log.Warn("failed to get CCD rate", zap.String("currency", h.currency), zap.Error(err))
		return
	}
	resp.FiatValue = common.FiatValue(micro, rate)
	resp.FiatCurrency = h.currency
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg, Code: code})
}
