package audio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/puresoul/puresoul/backend/internal/model/category"
	"github.com/puresoul/puresoul/backend/internal/model/chat"
	"github.com/puresoul/puresoul/backend/internal/service/credit"
	"github.com/puresoul/puresoul/backend/internal/service/history"
	sessionservice "github.com/puresoul/puresoul/backend/internal/service/session"
)

type staticReplier struct{ text string }

func (r staticReplier) Reply(_ context.Context, _ string, _ []chat.Message, _ category.Category) (string, error) {
	return r.text, nil
}

type staticSynth struct{ audio []byte }

func (s staticSynth) Synthesize(_ context.Context, _ string) ([]byte, error) {
	return s.audio, nil
}

func setupServer(t *testing.T) (*httptest.Server, *sessionservice.Service) {
	t.Helper()

	svc := sessionservice.NewService(
		category.NewMemoryStore(category.Seed()),
		credit.NewMemoryLedger(12),
		staticReplier{text: "Sab theek ho jayega."},
		staticSynth{audio: []byte("mpeg-bytes")},
		history.NewStore(),
	)

	r := chi.NewRouter()
	New(svc).RegisterRoutes(r)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, svc
}

func wsURL(server *httptest.Server, sessionID string) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/session/" + sessionID + "/audio"
}

func TestConnectUnknownSession(t *testing.T) {
	server, _ := setupServer(t)

	resp, err := http.Get(server.URL + "/session/missing/audio")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestAudioStreamsOverWebsocket(t *testing.T) {
	server, svc := setupServer(t)

	session, err := svc.Create(context.Background(), "amit", "mental-health")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, session.ID), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// The welcome message may still be draining through the no-op sink;
	// this send enqueues a reply that must reach the attached listener.
	if _, err := svc.Send(context.Background(), session.ID, "hello"); err != nil {
		t.Fatalf("send: %v", err)
	}

	// Read until the binary audio frame arrives. Control frames (stop,
	// release, play) precede it.
	var audio []byte
	sawPlay := false
	deadline := time.Now().Add(3 * time.Second)
	for audio == nil {
		conn.SetReadDeadline(deadline)
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		switch msgType {
		case websocket.BinaryMessage:
			audio = data
		case websocket.TextMessage:
			if strings.Contains(string(data), `"play"`) {
				sawPlay = true
			}
		}
	}

	if !sawPlay {
		t.Fatal("expected a play control frame before the audio")
	}
	if string(audio) != "mpeg-bytes" {
		t.Fatalf("unexpected audio payload: %q", audio)
	}

	// Report playback completion so the queue can advance and release the
	// utterance.
	if err := conn.WriteJSON(map[string]string{"type": "ended"}); err != nil {
		t.Fatalf("write ended: %v", err)
	}

	sawRelease := false
	for !sawRelease {
		conn.SetReadDeadline(time.Now().Add(3 * time.Second))
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read after ended: %v", err)
		}
		if msgType == websocket.TextMessage && strings.Contains(string(data), `"release"`) {
			sawRelease = true
		}
	}
}
