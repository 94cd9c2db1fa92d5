package credit_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/puresoul/puresoul/backend/internal/service/credit"
)

func TestMemoryLedgerConsumeToZero(t *testing.T) {
	ledger := credit.NewMemoryLedger(2)
	ctx := context.Background()

	if balance, err := ledger.Consume(ctx, "amit"); err != nil || balance != 1 {
		t.Fatalf("first consume: balance=%d err=%v", balance, err)
	}
	if balance, err := ledger.Consume(ctx, "amit"); err != nil || balance != 0 {
		t.Fatalf("second consume: balance=%d err=%v", balance, err)
	}

	if _, err := ledger.Consume(ctx, "amit"); !errors.Is(err, credit.ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}

	balance, err := ledger.Balance(ctx, "amit")
	if err != nil {
		t.Fatalf("Balance err: %v", err)
	}
	if balance != 0 {
		t.Fatalf("balance went below zero: %d", balance)
	}
}

func TestMemoryLedgerConcurrentConsumeNeverNegative(t *testing.T) {
	const allowance = 25
	const callers = 100

	ledger := credit.NewMemoryLedger(allowance)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ledger.Consume(ctx, "amit"); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != allowance {
		t.Fatalf("expected exactly %d successful consumes, got %d", allowance, succeeded)
	}

	balance, err := ledger.Balance(ctx, "amit")
	if err != nil {
		t.Fatalf("Balance err: %v", err)
	}
	if balance != 0 {
		t.Fatalf("expected zero balance, got %d", balance)
	}
}

func TestMemoryLedgerAdd(t *testing.T) {
	ledger := credit.NewMemoryLedger(12)
	ctx := context.Background()

	balance, err := ledger.Add(ctx, "amit", 10)
	if err != nil {
		t.Fatalf("Add err: %v", err)
	}
	if balance != 22 {
		t.Fatalf("expected 22 credits, got %d", balance)
	}

	purchased, err := ledger.Purchased(ctx, "amit")
	if err != nil {
		t.Fatalf("Purchased err: %v", err)
	}
	if purchased != 10 {
		t.Fatalf("allowance must not count as purchased, got %d", purchased)
	}

	if _, err := ledger.Add(ctx, "amit", 0); !errors.Is(err, credit.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := ledger.Add(ctx, "amit", -5); !errors.Is(err, credit.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestMemoryLedgerRequiresUser(t *testing.T) {
	ledger := credit.NewMemoryLedger(12)
	ctx := context.Background()

	if _, err := ledger.Consume(ctx, ""); !errors.Is(err, credit.ErrUserRequired) {
		t.Fatalf("expected ErrUserRequired, got %v", err)
	}
}
