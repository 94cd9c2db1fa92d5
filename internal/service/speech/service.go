package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

var (
	stageDirections = regexp.MustCompile(`\*.*?\*`)
	emoji           = regexp.MustCompile(`[\x{1F300}-\x{1FAFF}\x{2600}-\x{27BF}\x{1F600}-\x{1F64F}]`)
)

// CleanText strips stage directions (*sighs*) and emoji before
// synthesis; they read badly when spoken aloud.
func CleanText(text string) string {
	cleaned := stageDirections.ReplaceAllString(text, "")
	cleaned = emoji.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// Service synthesizes speech through an HTTP TTS backend: POST {text},
// raw audio bytes back. An empty body means the backend declined and the
// utterance should be skipped.
type Service struct {
	baseURL string
	token   string
	voice   string
	client  *http.Client
}

// NewService builds a synthesis client. timeout bounds each request.
func NewService(baseURL, token, voice string, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{
		baseURL: baseURL,
		token:   token,
		voice:   voice,
		client:  &http.Client{Timeout: timeout},
	}
}

type ttsRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice,omitempty"`
}

// Synthesize converts text to audio bytes. Blank text (after cleaning)
// yields nil audio with no error.
func (s *Service) Synthesize(ctx context.Context, text string) ([]byte, error) {
	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, nil
	}

	payload, err := json.Marshal(ttsRequest{Text: cleaned, Voice: s.voice})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/text-to-speech", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("tts backend returned status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read tts audio: %w", err)
	}
	return audio, nil
}
