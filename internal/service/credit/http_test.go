package credit_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/puresoul/puresoul/backend/internal/service/credit"
)

func TestHTTPLedgerConsume(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/credits/use" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("missing bearer credential, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"credits":7}`))
	}))
	defer server.Close()

	ledger := credit.NewHTTPLedger(server.URL, "secret", time.Second)
	balance, err := ledger.Consume(context.Background(), "amit")
	if err != nil {
		t.Fatalf("Consume err: %v", err)
	}
	if balance != 7 {
		t.Fatalf("expected balance 7, got %d", balance)
	}
}

func TestHTTPLedgerConsumeExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"success":false,"credits":0}`))
	}))
	defer server.Close()

	ledger := credit.NewHTTPLedger(server.URL, "secret", time.Second)
	if _, err := ledger.Consume(context.Background(), "amit"); !errors.Is(err, credit.ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
}

func TestHTTPLedgerConsumeTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ledger := credit.NewHTTPLedger(server.URL, "secret", time.Second)
	if _, err := ledger.Consume(context.Background(), "amit"); err == nil {
		t.Fatal("expected error on 500 response")
	}
}

func TestHTTPLedgerBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/credits" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"credits":12,"totalPurchased":30}`))
	}))
	defer server.Close()

	ledger := credit.NewHTTPLedger(server.URL, "secret", time.Second)

	balance, err := ledger.Balance(context.Background(), "amit")
	if err != nil {
		t.Fatalf("Balance err: %v", err)
	}
	if balance != 12 {
		t.Fatalf("expected 12, got %d", balance)
	}

	purchased, err := ledger.Purchased(context.Background(), "amit")
	if err != nil {
		t.Fatalf("Purchased err: %v", err)
	}
	if purchased != 30 {
		t.Fatalf("expected 30, got %d", purchased)
	}
}
