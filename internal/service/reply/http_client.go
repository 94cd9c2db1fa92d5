package reply

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/puresoul/puresoul/backend/internal/model/category"
	"github.com/puresoul/puresoul/backend/internal/model/chat"
)

// HTTPClient implements Replier against an external reply backend.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPClient builds a reply client for the backend at baseURL,
// authenticated by a bearer credential. timeout bounds each request.
func NewHTTPClient(baseURL, token string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

type historyEntry struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type replyRequest struct {
	UserMessage    string         `json:"userMessage"`
	MessageHistory []historyEntry `json:"messageHistory"`
	Category       string         `json:"category"`
}

type replyResponse struct {
	TherapistResponse string `json:"therapistResponse"`
}

// Reply calls the backend. A 403 means server-side credit exhaustion and
// maps to ErrCreditExhausted; any other non-2xx is a transport error.
func (c *HTTPClient) Reply(ctx context.Context, userMessage string, history []chat.Message, cat category.Category) (string, error) {
	entries := make([]historyEntry, 0, len(history))
	for _, m := range history {
		entries = append(entries, historyEntry{Sender: m.Sender, Text: m.Text})
	}

	payload, err := json.Marshal(replyRequest{
		UserMessage:    userMessage,
		MessageHistory: entries,
		Category:       cat.Name,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/get-response", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return "", ErrCreditExhausted
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("reply backend returned status %d", resp.StatusCode)
	}

	var decoded replyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode reply response: %w", err)
	}
	return decoded.TherapistResponse, nil
}
