package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/puresoul/puresoul/backend/internal/model/chat"
	"github.com/puresoul/puresoul/backend/internal/model/mood"
	"github.com/puresoul/puresoul/backend/internal/service/history"
)

func TestAppendEmotionFillsDefaults(t *testing.T) {
	store := history.NewStore()

	record := store.AppendEmotion(context.Background(), "amit", mood.Record{Emotion: "happy", Confidence: 1.7})
	if record.ID == "" {
		t.Fatal("expected generated id")
	}
	if record.Timestamp.IsZero() {
		t.Fatal("expected filled timestamp")
	}
	if record.Confidence != 1 {
		t.Fatalf("expected clamped confidence, got %f", record.Confidence)
	}
}

func TestRecordsAreScopedPerUser(t *testing.T) {
	store := history.NewStore()
	ctx := context.Background()

	store.AppendEmotion(ctx, "amit", mood.Record{Emotion: "happy"})
	store.AppendEmotion(ctx, "neha", mood.Record{Emotion: "sad"})
	store.AppendSession(ctx, chat.Record{ID: "s1", UserID: "amit", EndTime: time.Now()})

	if got := len(store.Emotions(ctx, "amit")); got != 1 {
		t.Fatalf("expected 1 emotion for amit, got %d", got)
	}
	if got := len(store.Sessions(ctx, "neha")); got != 0 {
		t.Fatalf("expected no sessions for neha, got %d", got)
	}
	if got := len(store.Sessions(ctx, "amit")); got != 1 {
		t.Fatalf("expected 1 session for amit, got %d", got)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	store := history.NewStore()
	ctx := context.Background()

	store.AppendEmotion(ctx, "amit", mood.Record{Emotion: "happy"})

	first := store.Emotions(ctx, "amit")
	first[0].Emotion = "mutated"

	second := store.Emotions(ctx, "amit")
	if second[0].Emotion != "happy" {
		t.Fatal("reads must not share backing storage")
	}
}
