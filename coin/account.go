package coin

import "sync"

// AccountSource reports the account currently selected in the connected wallet
type AccountSource interface {
	// CurrentAccount returns the selected account, or false when no account is connected
	CurrentAccount() (string, bool)
	// OnAccountChanged registers fn for account changes and disconnects.
	// The returned func removes the registration.
	OnAccountChanged(fn func(account string, connected bool)) (unsubscribe func())
}

// WalletAccount is an AccountSource fed by wallet connection events.
// Listeners receive events in the order the state changed and must not call Connect or Disconnect.
type WalletAccount struct {
	// delivery serializes state changes with their fan-out
	delivery  sync.Mutex
	mu        sync.Mutex
	account   string
	connected bool
	listeners map[int]func(string, bool)
	nextID    int
}

// NewWalletAccount creates a disconnected WalletAccount
func NewWalletAccount() *WalletAccount {
	return &WalletAccount{
		listeners: make(map[int]func(string, bool)),
	}
}

// CurrentAccount implements AccountSource
func (w *WalletAccount) CurrentAccount() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.account, w.connected
}

// OnAccountChanged implements AccountSource
func (w *WalletAccount) OnAccountChanged(fn func(account string, connected bool)) func() {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.listeners[id] = fn
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		delete(w.listeners, id)
		w.mu.Unlock()
	}
}

// Connect selects account, as on a wallet connect or account change event
func (w *WalletAccount) Connect(account string) {
	w.update(account, true)
}

// Disconnect clears the selected account
func (w *WalletAccount) Disconnect() {
	w.update("", false)
}

func (w *WalletAccount) update(account string, connected bool) {
	w.delivery.Lock()
	defer w.delivery.Unlock()

	w.mu.Lock()
	w.account = account
	w.connected = connected
	fns := make([]func(string, bool), 0, len(w.listeners))
	for _, fn := range w.listeners {
		fns = append(fns, fn)
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(account, connected)
	}
}
