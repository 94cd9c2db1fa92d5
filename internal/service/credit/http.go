package credit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPLedger implements Ledger against a remote credit backend. The
// remote stays the single source of truth; every call here is a round
// trip. Requests carry a bearer credential plus the caller identity.
type HTTPLedger struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPLedger builds a ledger client for the backend at baseURL.
// timeout bounds every request.
func NewHTTPLedger(baseURL, token string, timeout time.Duration) *HTTPLedger {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPLedger{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

type creditPayload struct {
	Credits   int  `json:"credits"`
	Purchased int  `json:"totalPurchased"`
	Success   bool `json:"success"`
}

func (l *HTTPLedger) do(ctx context.Context, method, path, userID string, body any) (*creditPayload, int, error) {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, l.baseURL+path, reader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+l.token)
	req.Header.Set("X-User-ID", userID)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var payload creditPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil && resp.StatusCode < 300 {
		return nil, resp.StatusCode, fmt.Errorf("decode credit response: %w", err)
	}
	return &payload, resp.StatusCode, nil
}

// Consume decrements the remote balance by one. A 403 from the backend
// means the balance is exhausted; any other non-2xx is a transport
// failure, which callers must treat as a refusal.
func (l *HTTPLedger) Consume(ctx context.Context, userID string) (int, error) {
	payload, status, err := l.do(ctx, http.MethodPost, "/api/credits/use", userID, nil)
	if err != nil {
		return 0, err
	}
	switch {
	case status == http.StatusForbidden:
		return 0, ErrInsufficientCredits
	case status >= 300:
		return 0, fmt.Errorf("credit backend returned status %d", status)
	}
	return payload.Credits, nil
}

// Add credits the remote balance by amount.
func (l *HTTPLedger) Add(ctx context.Context, userID string, amount int) (int, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	payload, status, err := l.do(ctx, http.MethodPost, "/api/credits/buy", userID, map[string]int{"amount": amount})
	if err != nil {
		return 0, err
	}
	if status >= 300 {
		return 0, fmt.Errorf("credit backend returned status %d", status)
	}
	return payload.Credits, nil
}

// Balance fetches the remote balance.
func (l *HTTPLedger) Balance(ctx context.Context, userID string) (int, error) {
	payload, status, err := l.do(ctx, http.MethodGet, "/api/credits", userID, nil)
	if err != nil {
		return 0, err
	}
	if status >= 300 {
		return 0, fmt.Errorf("credit backend returned status %d", status)
	}
	return payload.Credits, nil
}

// Purchased fetches the remote lifetime purchased total.
func (l *HTTPLedger) Purchased(ctx context.Context, userID string) (int, error) {
	payload, status, err := l.do(ctx, http.MethodGet, "/api/credits", userID, nil)
	if err != nil {
		return 0, err
	}
	if status >= 300 {
		return 0, fmt.Errorf("credit backend returned status %d", status)
	}
	return payload.Purchased, nil
}
