// Package memhost is an in-memory host runtime for tests and local runs.
// Every Host owns its own state; build a fresh one per test case.
package memhost

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/reglet-dev/contract-sdk/domain/errors"
	"github.com/reglet-dev/contract-sdk/domain/ports"
	"github.com/reglet-dev/contract-sdk/infrastructure/hostcrypto"
	"github.com/reglet-dev/contract-sdk/query/engine"
)

// Account is the ledger view of one key.
type Account struct {
	Name    string
	Balance uint64
}

// Host implements ports.Runtime entirely in memory.
type Host struct {
	*hostcrypto.Crypto
	*engine.Executor

	logger *slog.Logger

	mu        sync.Mutex
	input     []byte
	sender    []byte
	returned  [][]byte
	state     map[string][]byte
	accounts  map[string]Account
	owner     []byte
	logs      []string
	errorLogs []string
}

var _ ports.Runtime = (*Host)(nil)

// Option configures a Host.
type Option func(*Host)

// WithInput sets the call input returned by Arguments.
func WithInput(input []byte) Option {
	return func(h *Host) {
		h.input = input
	}
}

// WithSender sets the caller key returned by Sender.
func WithSender(sender []byte) Option {
	return func(h *Host) {
		h.sender = sender
	}
}

// WithOwner sets the key IsOwner accepts.
func WithOwner(owner []byte) Option {
	return func(h *Host) {
		h.owner = owner
	}
}

// WithAccount registers an account.
func WithAccount(key []byte, account Account) Option {
	return func(h *Host) {
		h.accounts[string(key)] = account
	}
}

// WithState seeds a key/value pair.
func WithState(key, value []byte) Option {
	return func(h *Host) {
		h.state[string(key)] = clone(value)
	}
}

// WithLogger mirrors contract log messages to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		h.logger = logger
	}
}

// New returns an empty Host.
func New(opts ...Option) *Host {
	exec, err := engine.New(engine.NewMemStore())
	if err != nil {
		// engine.New only fails for an invalid cache size, and the default is valid.
		panic(fmt.Sprintf("memhost: %v", err))
	}
	h := &Host{
		Crypto:   hostcrypto.New(),
		Executor: exec,
		logger:   slog.New(slog.DiscardHandler),
		state:    make(map[string][]byte),
		accounts: make(map[string]Account),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SetInput replaces the call input for the next call.
func (h *Host) SetInput(input []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.input = input
}

// Arguments implements ports.Transaction.
func (h *Host) Arguments(context.Context) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return clone(h.input), nil
}

// Return implements ports.Transaction.
func (h *Host) Return(_ context.Context, results []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.returned = append(h.returned, clone(results))
	return nil
}

// Sender implements ports.Transaction.
func (h *Host) Sender(context.Context) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return clone(h.sender), nil
}

// Returned lists every payload handed to Return, oldest first.
func (h *Host) Returned() [][]byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([][]byte, len(h.returned))
	copy(out, h.returned)
	return out
}

// LastReturn returns the most recent payload handed to Return.
func (h *Host) LastReturn() ([]byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.returned) == 0 {
		return nil, false
	}
	return h.returned[len(h.returned)-1], true
}

// Store implements ports.Persistence.
func (h *Host) Store(_ context.Context, key, value []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state[string(key)] = clone(value)
	return nil
}

// Get implements ports.Persistence.
func (h *Host) Get(_ context.Context, key []byte) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.state[string(key)]
	if !ok {
		return nil, fmt.Errorf("get %x: %w", key, errors.ErrMissingKey)
	}
	return clone(v), nil
}

// Delete implements ports.Persistence.
func (h *Host) Delete(_ context.Context, key []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.state[string(key)]; !ok {
		return fmt.Errorf("delete %x: %w", key, errors.ErrMissingKey)
	}
	delete(h.state, string(key))
	return nil
}

// KeyExists implements ports.Persistence.
func (h *Host) KeyExists(_ context.Context, key []byte) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.state[string(key)]
	return ok, nil
}

// StateLen returns the number of stored keys.
func (h *Host) StateLen() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.state)
}

// IsOwner implements ports.Accounts.
func (h *Host) IsOwner(_ context.Context, key []byte) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.owner != nil && string(h.owner) == string(key), nil
}

// AccountName implements ports.Accounts.
func (h *Host) AccountName(_ context.Context, key []byte) (string, error) {
	a, err := h.account(key)
	return a.Name, err
}

// AccountBalance implements ports.Accounts.
func (h *Host) AccountBalance(_ context.Context, key []byte) (uint64, error) {
	a, err := h.account(key)
	return a.Balance, err
}

func (h *Host) account(key []byte) (Account, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	a, ok := h.accounts[string(key)]
	if !ok {
		return Account{}, fmt.Errorf("account %x: %w", key, errors.ErrMissingKey)
	}
	return a, nil
}

// Log implements ports.Logger.
func (h *Host) Log(ctx context.Context, msg string) error {
	h.mu.Lock()
	h.logs = append(h.logs, msg)
	h.mu.Unlock()
	h.logger.InfoContext(ctx, msg, slog.String("source", "contract"))
	return nil
}

// LogError implements ports.Logger.
func (h *Host) LogError(ctx context.Context, msg string) error {
	h.mu.Lock()
	h.errorLogs = append(h.errorLogs, msg)
	h.mu.Unlock()
	h.logger.ErrorContext(ctx, msg, slog.String("source", "contract"))
	return nil
}

// Logs returns the messages passed to Log.
func (h *Host) Logs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.logs...)
}

// ErrorLogs returns the messages passed to LogError.
func (h *Host) ErrorLogs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.errorLogs...)
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
