package credit

import (
	"context"
	"log"
	"sync"
)

// Client is one caller's view of the ledger. The ledger stays
// authoritative; the cached balance is advisory, for display and for
// cheap pre-checks, and is reconciled after every mutating call.
type Client struct {
	ledger Ledger
	userID string

	mu     sync.Mutex
	cached int
}

// NewClient builds a client for userID. The cache starts at zero until
// the first Refresh succeeds.
func NewClient(ledger Ledger, userID string) *Client {
	return &Client{ledger: ledger, userID: userID}
}

// Consume attempts to spend exactly one credit. Any error from the
// ledger, transient or not, is treated as a refusal: no credit is spent
// and the cache is left untouched.
func (c *Client) Consume(ctx context.Context) bool {
	balance, err := c.ledger.Consume(ctx, c.userID)
	if err != nil {
		log.Printf("[credit] consume refused for user=%s: %v", c.userID, err)
		return false
	}

	c.mu.Lock()
	c.cached = balance
	c.mu.Unlock()
	return true
}

// Add credits the caller's balance by amount.
func (c *Client) Add(ctx context.Context, amount int) error {
	balance, err := c.ledger.Add(ctx, c.userID, amount)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.cached = balance
	c.mu.Unlock()
	return nil
}

// Refresh re-synchronizes the cache from the ledger. Failures leave the
// previous cached value in place.
func (c *Client) Refresh(ctx context.Context) {
	balance, err := c.ledger.Balance(ctx, c.userID)
	if err != nil {
		log.Printf("[credit] refresh failed for user=%s: %v", c.userID, err)
		return
	}

	c.mu.Lock()
	c.cached = balance
	c.mu.Unlock()
}

// Cached returns the advisory local balance.
func (c *Client) Cached() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cached
}
