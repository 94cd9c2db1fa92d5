package history

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/puresoul/puresoul/backend/internal/model/chat"
	"github.com/puresoul/puresoul/backend/internal/model/mood"
)

// Store keeps finalized session records and emotion records behind a
// read-all/append interface. In-memory, suitable for early iterations;
// a durable backend can replace it without touching consumers.
type Store struct {
	mu       sync.RWMutex
	sessions map[string][]chat.Record
	emotions map[string][]mood.Record
}

// NewStore bootstraps an empty history store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string][]chat.Record),
		emotions: make(map[string][]mood.Record),
	}
}

// AppendSession records one finalized session for its user.
func (s *Store) AppendSession(_ context.Context, record chat.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[record.UserID] = append(s.sessions[record.UserID], record)
}

// AppendEmotion records one emotion observation for a user. Missing IDs
// and timestamps are filled in; confidence is clamped to [0,1].
func (s *Store) AppendEmotion(_ context.Context, userID string, record mood.Record) mood.Record {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	record.Confidence = mood.ClampConfidence(record.Confidence)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.emotions[userID] = append(s.emotions[userID], record)
	return record
}

// Sessions returns all finalized sessions for a user, in append order.
func (s *Store) Sessions(_ context.Context, userID string) []chat.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.sessions[userID]
	copied := make([]chat.Record, len(records))
	copy(copied, records)
	return copied
}

// Emotions returns all emotion records for a user, in append order.
func (s *Store) Emotions(_ context.Context, userID string) []mood.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.emotions[userID]
	copied := make([]mood.Record, len(records))
	copy(copied, records)
	return copied
}
