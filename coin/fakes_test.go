package coin

import (
	"context"
	"encoding/hex"
	"sync"
)

// fakeLedger serves coin records by public key hex.
// A gate registered for a key blocks the query until the gate is closed.
type fakeLedger struct {
	mu      sync.Mutex
	coins   map[string]CoinRecord
	raw     map[string][]byte
	gates   map[string]chan struct{}
	entered chan string
	err     error
	calls   []ContractInvocation
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		coins:   make(map[string]CoinRecord),
		raw:     make(map[string][]byte),
		gates:   make(map[string]chan struct{}),
		entered: make(chan string, 16),
	}
}

func (f *fakeLedger) gate(publicKeyHex string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[publicKeyHex] = ch
	return ch
}

func (f *fakeLedger) InvokeContract(ctx context.Context, inv ContractInvocation) (*InvokeResult, error) {
	key := hex.EncodeToString(inv.Parameter)

	f.mu.Lock()
	f.calls = append(f.calls, inv)
	gate := f.gates[key]
	f.mu.Unlock()

	if gate != nil {
		f.entered <- key
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if raw, ok := f.raw[key]; ok {
		return &InvokeResult{Success: true, ReturnValue: raw}, nil
	}
	rec, ok := f.coins[key]
	if !ok {
		return &InvokeResult{Success: false}, nil
	}
	return &InvokeResult{Success: true, ReturnValue: EncodeCoinRecord(rec)}, nil
}

// fakeBroadcaster records sent transactions and finalizes them with fin.
// With a gate set, finalization blocks until the gate is closed; sendGate does the same for sending.
type fakeBroadcaster struct {
	mu          sync.Mutex
	sent        []UpdateTransaction
	txHash      string
	sendErr     error
	fin         *Finalization
	waitErr     error
	gate        chan struct{}
	entered     chan struct{}
	sendGate    chan struct{}
	sendEntered chan struct{}
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{
		txHash:      "4d2a0c1ffb0305a3ce05a58e5e4eab0b5d8b1e2f3f4c1a9b8e7d6c5b4a392817",
		fin:         &Finalization{},
		entered:     make(chan struct{}, 1),
		sendEntered: make(chan struct{}, 16),
	}
}

func (f *fakeBroadcaster) SendUpdate(ctx context.Context, tx UpdateTransaction) (string, error) {
	f.mu.Lock()
	gate := f.sendGate
	f.mu.Unlock()

	if gate != nil {
		f.sendEntered <- struct{}{}
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, tx)
	if f.sendErr != nil {
		return "", f.sendErr
	}
	return f.txHash, nil
}

func (f *fakeBroadcaster) WaitForFinalization(ctx context.Context, txHash string) (*Finalization, error) {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		f.entered <- struct{}{}
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.waitErr != nil {
		return nil, f.waitErr
	}
	return f.fin, nil
}

func (f *fakeBroadcaster) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
