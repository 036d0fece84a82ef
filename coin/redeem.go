package coin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrNotRedeemable is returned when a redemption is submitted outside GoodSeed
	ErrNotRedeemable = errors.New("coin is not ready to be redeemed")
	// ErrNoAccount is returned when a redemption is submitted without a connected account
	ErrNoAccount = errors.New("no wallet account connected")
)

// UpdateTransaction is a contract update sent from the connected wallet account
type UpdateTransaction struct {
	Sender      string
	Amount      uint64
	Contract    ContractAddress
	ReceiveName string
	Energy      uint64
	Parameter   []byte
	// Schema is the base64 parameter schema the wallet uses to display the parameter
	Schema string
}

// Finalization is the finalized outcome of a transaction
type Finalization struct {
	Rejected   bool
	RejectCode int32
}

// Broadcaster sends transactions through the wallet and waits for them to finalize
type Broadcaster interface {
	SendUpdate(ctx context.Context, tx UpdateTransaction) (txHash string, err error)
	WaitForFinalization(ctx context.Context, txHash string) (*Finalization, error)
}

// State is the redemption state shown to the user
type State int

const (
	StateNoValidSeed State = iota
	StateRedeemedSeed
	StateGoodSeed
	StateRedeeming
	StateRedeemSuccess
	StateRedeemFailure
)

func (s State) String() string {
	switch s {
	case StateNoValidSeed:
		return "no_valid_seed"
	case StateRedeemedSeed:
		return "redeemed_seed"
	case StateGoodSeed:
		return "good_seed"
	case StateRedeeming:
		return "redeeming"
	case StateRedeemSuccess:
		return "redeem_success"
	case StateRedeemFailure:
		return "redeem_failure"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether the state only changes on a new seed
func (s State) Terminal() bool {
	switch s {
	case StateNoValidSeed, StateRedeemedSeed, StateRedeemSuccess, StateRedeemFailure:
		return true
	default:
		return false
	}
}

// Redemption is the result of a finalized redemption
type Redemption struct {
	PublicKeyHex string
	Account      string
	TxHash       string
}

// Snapshot is the state of a Machine at one point in time.
// Coin is set in RedeemedSeed, GoodSeed and every later state;
// Redemption only in RedeemSuccess; Message and Err in NoValidSeed and RedeemFailure.
type Snapshot struct {
	State  State
	Answer AnswerKind
	// Pending is set while the seed is being classified
	Pending    bool
	Message    string
	Err        error
	Coin       *CoinRecord
	Redemption *Redemption
}

func pendingSnapshot() Snapshot {
	return Snapshot{State: StateNoValidSeed, Pending: true}
}

func answerSnapshot(a SeedAnswer) Snapshot {
	switch a.Kind {
	case AnswerPristineCoin:
		rec := a.Coin
		return Snapshot{State: StateGoodSeed, Answer: a.Kind, Coin: &rec}
	case AnswerRedeemedCoin:
		rec := a.Coin
		return Snapshot{State: StateRedeemedSeed, Answer: a.Kind, Coin: &rec}
	case AnswerInvalidEncoding, AnswerInvalidLength, AnswerCoinNotFound, AnswerDeserializationFailed:
		return Snapshot{State: StateNoValidSeed, Answer: a.Kind, Message: a.Message(), Err: a.Err}
	default:
		return Snapshot{State: StateNoValidSeed, Answer: a.Kind, Message: "Provided seed is invalid.", Err: a.Err}
	}
}

func failureSnapshot(prev Snapshot, err error) Snapshot {
	var reject *RejectError
	var message string
	if errors.As(err, &reject) {
		message = "Redemption rejected: " + RejectReason(reject.Code)
	} else {
		message = "Redemption failed: " + err.Error()
	}
	return Snapshot{State: StateRedeemFailure, Answer: prev.Answer, Message: message, Err: err, Coin: prev.Coin}
}

func successSnapshot(prev Snapshot, r Redemption) Snapshot {
	return Snapshot{State: StateRedeemSuccess, Answer: prev.Answer, Coin: prev.Coin, Redemption: &r}
}

// MachineOption configures a Machine
type MachineOption func(*Machine)

// WithLogger sets the logger for state transitions
func WithLogger(log *zap.Logger) MachineOption {
	return func(m *Machine) {
		m.log = log
	}
}

// WithObserver registers fn to receive every committed snapshot
func WithObserver(fn func(Snapshot)) MachineOption {
	return func(m *Machine) {
		m.observers = append(m.observers, fn)
	}
}

// Machine drives the redemption of one coin at a time.
// Loading a new seed abandons the previous one; late results for it are discarded.
type Machine struct {
	ledger      LedgerQuerier
	broadcaster Broadcaster
	accounts    AccountSource
	log         *zap.Logger
	observers   []func(Snapshot)
	unsubscribe func()

	mu         sync.Mutex
	seed       string
	generation uint64
	snap       Snapshot
}

// NewMachine creates a Machine in NoValidSeed that redeems to the account selected in accounts
func NewMachine(ledger LedgerQuerier, broadcaster Broadcaster, accounts AccountSource, opts ...MachineOption) *Machine {
	m := &Machine{
		ledger:      ledger,
		broadcaster: broadcaster,
		accounts:    accounts,
		log:         zap.NewNop(),
		snap:        Snapshot{State: StateNoValidSeed},
	}
	for _, opt := range opts {
		opt(m)
	}

	m.unsubscribe = accounts.OnAccountChanged(func(account string, connected bool) {
		m.log.Debug("wallet account changed", zap.String("account", account), zap.Bool("connected", connected))
	})
	return m
}

// Close stops tracking wallet account changes
func (m *Machine) Close() {
	m.unsubscribe()
}

// Snapshot returns the current state
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

// Account returns the account a redemption submitted now would use
func (m *Machine) Account() (string, bool) {
	return m.accounts.CurrentAccount()
}

// Load starts the pipeline for a new seed and waits for its classification
func (m *Machine) Load(ctx context.Context, seedString string) Snapshot {
	pending := pendingSnapshot()

	m.mu.Lock()
	m.generation++
	gen := m.generation
	m.seed = seedString
	from := m.snap.State
	m.snap = pending
	m.mu.Unlock()
	m.notify(from, pending)

	answer := CheckSeed(ctx, seedString, m.ledger)
	if answer.Err != nil {
		m.log.Warn("seed classification failed", zap.Stringer("answer", answer.Kind), zap.Error(answer.Err))
	}
	return m.commit(gen, answerSnapshot(answer))
}

// Redeem submits the redemption of the loaded coin to the connected account
// and waits for the transaction to finalize.
func (m *Machine) Redeem(ctx context.Context) (Snapshot, error) {
	m.mu.Lock()
	if m.snap.State != StateGoodSeed || m.snap.Pending {
		snap := m.snap
		m.mu.Unlock()
		return snap, ErrNotRedeemable
	}
	account, connected := m.accounts.CurrentAccount()
	if !connected || account == "" {
		snap := m.snap
		m.mu.Unlock()
		return snap, ErrNoAccount
	}
	gen := m.generation
	seedString := m.seed
	redeeming := Snapshot{State: StateRedeeming, Answer: m.snap.Answer, Coin: m.snap.Coin}
	m.snap = redeeming
	m.mu.Unlock()
	m.notify(StateGoodSeed, redeeming)

	redemption, err := m.submit(ctx, seedString, account)
	if err != nil {
		m.log.Warn("redemption failed", zap.String("account", account), zap.Error(err))
		return m.commit(gen, failureSnapshot(redeeming, err)), nil
	}
	m.log.Info("coin redeemed",
		zap.String("publicKey", redemption.PublicKeyHex),
		zap.String("account", account),
		zap.String("txHash", redemption.TxHash),
	)
	return m.commit(gen, successSnapshot(redeeming, redemption)), nil
}

func (m *Machine) submit(ctx context.Context, seedString, account string) (Redemption, error) {
	seed, err := DecodeSeed(seedString)
	if err != nil {
		return Redemption{}, err
	}
	keys := DeriveKeys(seed)
	defer keys.Wipe()

	payload, err := SignAccount(keys, account)
	if err != nil {
		return Redemption{}, err
	}

	param, err := payload.RedeemParameter()
	if err != nil {
		return Redemption{}, err
	}
	paramBytes, err := param.MarshalBinary()
	if err != nil {
		return Redemption{}, err
	}

	txHash, err := m.broadcaster.SendUpdate(ctx, UpdateTransaction{
		Sender:      account,
		Amount:      0,
		Contract:    RedeemContract,
		ReceiveName: RedeemEntrypoint,
		Energy:      MaxContractEnergy,
		Parameter:   paramBytes,
		Schema:      RedeemParameterSchema,
	})
	if err != nil {
		return Redemption{}, &TransportError{Err: fmt.Errorf("failed to send transaction: %w", err)}
	}

	fin, err := m.broadcaster.WaitForFinalization(ctx, txHash)
	if err != nil {
		return Redemption{}, &TransportError{Err: fmt.Errorf("failed to wait for finalization of %s: %w", txHash, err)}
	}
	if fin == nil {
		return Redemption{}, &TransportError{Err: fmt.Errorf("no finalization summary for %s", txHash)}
	}
	if fin.Rejected {
		return Redemption{}, &RejectError{Code: fin.RejectCode}
	}

	return Redemption{
		PublicKeyHex: payload.PublicKeyHex,
		Account:      account,
		TxHash:       txHash,
	}, nil
}

// commit stores snap if gen is still current and returns the current snapshot
func (m *Machine) commit(gen uint64, snap Snapshot) Snapshot {
	m.mu.Lock()
	if gen != m.generation {
		current := m.snap
		m.mu.Unlock()
		m.log.Debug("discarding stale result", zap.Stringer("state", snap.State), zap.Uint64("generation", gen))
		return current
	}
	from := m.snap.State
	m.snap = snap
	m.mu.Unlock()

	m.notify(from, snap)
	return snap
}

func (m *Machine) notify(from State, snap Snapshot) {
	m.log.Debug("redemption state changed",
		zap.Stringer("from", from),
		zap.Stringer("to", snap.State),
		zap.Bool("pending", snap.Pending),
	)
	for _, fn := range m.observers {
		fn(snap)
	}
}
