package speech_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/puresoul/puresoul/backend/internal/service/speech"
)

func TestCleanTextStripsStageDirectionsAndEmoji(t *testing.T) {
	got := speech.CleanText("*sighs softly* Main hoon na dost 🫂")
	want := "Main hoon na dost"
	if got != want {
		t.Fatalf("CleanText: got %q want %q", got, want)
	}
}

func TestSynthesizeReturnsAudio(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/text-to-speech" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("mpeg-bytes"))
	}))
	defer server.Close()

	svc := speech.NewService(server.URL, "key", "voice-1", time.Second)
	audio, err := svc.Synthesize(context.Background(), "hello dost")
	if err != nil {
		t.Fatalf("Synthesize err: %v", err)
	}
	if string(audio) != "mpeg-bytes" {
		t.Fatalf("unexpected audio payload: %q", audio)
	}
}

func TestSynthesizeSkipsBlankText(t *testing.T) {
	svc := speech.NewService("http://unused", "key", "voice-1", time.Second)

	audio, err := svc.Synthesize(context.Background(), "*only a stage direction*")
	if err != nil {
		t.Fatalf("Synthesize err: %v", err)
	}
	if audio != nil {
		t.Fatalf("expected nil audio for blank text, got %d bytes", len(audio))
	}
}

func TestSynthesizeFailsOnBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := speech.NewService(server.URL, "key", "voice-1", time.Second)
	if _, err := svc.Synthesize(context.Background(), "hello"); err == nil {
		t.Fatal("expected error on backend failure")
	}
}
