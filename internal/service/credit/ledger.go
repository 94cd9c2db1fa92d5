package credit

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrInsufficientCredits is returned when a consume would take a
	// balance below zero.
	ErrInsufficientCredits = errors.New("insufficient credits")
	// ErrInvalidAmount rejects non-positive top-ups.
	ErrInvalidAmount = errors.New("credit amount must be positive")
	// ErrUserRequired rejects operations without a caller identity.
	ErrUserRequired = errors.New("user id is required")
)

// Ledger is the authoritative per-caller credit balance. Implementations
// must serialize decrements per caller so concurrent consumes can never
// drive a balance below zero.
type Ledger interface {
	// Consume decrements the caller's balance by exactly one and returns
	// the post-decrement balance, or ErrInsufficientCredits.
	Consume(ctx context.Context, userID string) (int, error)
	// Add credits the caller's balance by amount (amount > 0) and returns
	// the new balance.
	Add(ctx context.Context, userID string, amount int) (int, error)
	// Balance reports the caller's current balance.
	Balance(ctx context.Context, userID string) (int, error)
	// Purchased reports the caller's lifetime purchased total, excluding
	// the free starting allowance.
	Purchased(ctx context.Context, userID string) (int, error)
}

type account struct {
	balance   int
	purchased int
}

// MemoryLedger implements Ledger with an in-memory account map, suitable
// for single-process deployments. New callers start with the configured
// free allowance.
type MemoryLedger struct {
	mu        sync.Mutex
	accounts  map[string]*account
	allowance int
}

// NewMemoryLedger returns a MemoryLedger granting allowance credits to
// every caller on first touch.
func NewMemoryLedger(allowance int) *MemoryLedger {
	if allowance < 0 {
		allowance = 0
	}
	return &MemoryLedger{
		accounts:  make(map[string]*account),
		allowance: allowance,
	}
}

func (l *MemoryLedger) acct(userID string) *account {
	a, ok := l.accounts[userID]
	if !ok {
		a = &account{balance: l.allowance}
		l.accounts[userID] = a
	}
	return a
}

// Consume decrements the balance by one, failing closed at zero.
func (l *MemoryLedger) Consume(_ context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, ErrUserRequired
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	a := l.acct(userID)
	if a.balance <= 0 {
		return a.balance, ErrInsufficientCredits
	}
	a.balance--
	return a.balance, nil
}

// Add credits the balance by amount.
func (l *MemoryLedger) Add(_ context.Context, userID string, amount int) (int, error) {
	if userID == "" {
		return 0, ErrUserRequired
	}
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	a := l.acct(userID)
	a.balance += amount
	a.purchased += amount
	return a.balance, nil
}

// Balance reports the current balance.
func (l *MemoryLedger) Balance(_ context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, ErrUserRequired
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.acct(userID).balance, nil
}

// Purchased reports lifetime purchased credits.
func (l *MemoryLedger) Purchased(_ context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, ErrUserRequired
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.acct(userID).purchased, nil
}
