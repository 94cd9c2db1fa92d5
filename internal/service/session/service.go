package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/puresoul/puresoul/backend/internal/analysis/emotion"
	"github.com/puresoul/puresoul/backend/internal/model/category"
	"github.com/puresoul/puresoul/backend/internal/model/chat"
	"github.com/puresoul/puresoul/backend/internal/model/mood"
	"github.com/puresoul/puresoul/backend/internal/playback"
	"github.com/puresoul/puresoul/backend/internal/service/credit"
	"github.com/puresoul/puresoul/backend/internal/service/reply"
)

// Phase is a conversation's lifecycle state.
type Phase string

const (
	PhaseIntroduction Phase = "Introduction"
	PhaseActive       Phase = "Active"
	PhaseEnded        Phase = "Ended"
)

var (
	ErrUserRequired    = errors.New("user id is required")
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyMessage    = errors.New("message text is required")
	ErrSessionEnded    = errors.New("session has ended")
	ErrSendInFlight    = errors.New("another send is in progress")
	// ErrOutOfCredits surfaces the out-of-credit state: local zero
	// balance, a ledger refusal, or backend-reported exhaustion.
	ErrOutOfCredits = errors.New("out of credits")
)

// historyWindow bounds the trailing conversation context handed to the
// reply backend.
const historyWindow = 6

// Synthesizer converts reply text to audio for playback.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Recorder receives finalized sessions and detected emotion records.
type Recorder interface {
	AppendSession(ctx context.Context, record chat.Record)
	AppendEmotion(ctx context.Context, userID string, record mood.Record) mood.Record
}

// Conversation is one live session: its message log, playback queue,
// per-caller credit view and phase.
type Conversation struct {
	mu        sync.Mutex
	session   chat.Session
	category  category.Category
	phase     Phase
	messages  []chat.Message
	sending   bool
	sadStreak int
	record    chat.Record

	credits *credit.Client
	queue   *playback.Queue
}

// Session returns the conversation's session descriptor.
func (c *Conversation) Session() chat.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Phase returns the current lifecycle state.
func (c *Conversation) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Credits exposes the caller's credit view for display.
func (c *Conversation) Credits() *credit.Client {
	return c.credits
}

// SadStreak reports how many consecutive user messages have been tagged
// sad. Clients use it to surface a check-in prompt.
func (c *Conversation) SadStreak() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sadStreak
}

// AttachSink points the conversation's playback queue at a listener's
// audio sink, e.g. a freshly opened websocket connection.
func (c *Conversation) AttachSink(sink playback.Sink) {
	c.queue.SetSink(sink)
}

// Service drives conversations: credit-gated sends, reply dispatch,
// playback enqueueing and end-of-session recording.
type Service struct {
	mu            sync.RWMutex
	conversations map[string]*Conversation

	categories category.Store
	ledger     credit.Ledger
	replier    reply.Replier
	synth      Synthesizer
	recorder   Recorder
	now        func() time.Time
}

// NewService wires the session service. replier and synth may be nil;
// sends then fall back to the fixed reply and playback stays silent.
func NewService(categories category.Store, ledger credit.Ledger, replier reply.Replier, synth Synthesizer, recorder Recorder) *Service {
	return &Service{
		conversations: make(map[string]*Conversation),
		categories:    categories,
		ledger:        ledger,
		replier:       replier,
		synth:         synth,
		recorder:      recorder,
		now:           time.Now,
	}
}

// Create opens a conversation under a support category. The category
// welcome message is appended and enqueued for playback exactly once.
func (s *Service) Create(ctx context.Context, userID, categoryID string) (chat.Session, error) {
	if strings.TrimSpace(userID) == "" {
		return chat.Session{}, ErrUserRequired
	}

	cat, ok := s.categories.FindByID(categoryID)
	if !ok {
		cat, _ = s.categories.FindByID(category.DefaultID)
	}

	conv := &Conversation{
		session: chat.Session{
			ID:        uuid.NewString(),
			UserID:    userID,
			Category:  cat.ID,
			StartTime: s.now().UTC(),
		},
		category: cat,
		phase:    PhaseIntroduction,
		credits:  credit.NewClient(s.ledger, userID),
		queue:    playback.NewQueue(playback.NopSink{}),
	}
	conv.credits.Refresh(ctx)

	welcome := chat.Message{
		ID:        uuid.NewString(),
		Text:      cat.Welcome,
		Sender:    chat.SenderTherapist,
		Timestamp: conv.session.StartTime,
	}
	conv.messages = append(conv.messages, welcome)
	conv.queue.Enqueue(welcome.Text, s.fetcher())

	s.mu.Lock()
	s.conversations[conv.session.ID] = conv
	s.mu.Unlock()

	return conv.session, nil
}

// Get returns a live conversation.
func (s *Service) Get(sessionID string) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return conv, nil
}

// Transcript returns the conversation's messages in append order.
func (s *Service) Transcript(sessionID string) ([]chat.Message, error) {
	conv, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}

	conv.mu.Lock()
	defer conv.mu.Unlock()
	copied := make([]chat.Message, len(conv.messages))
	copy(copied, conv.messages)
	return copied, nil
}

// Send runs one credit-gated user turn: consume a credit fail-closed,
// append the user message, fetch the therapist reply (fallback on
// transport errors), append it and enqueue it for playback. Only one
// send may be in flight per conversation.
func (s *Service) Send(ctx context.Context, sessionID, text string) (chat.Message, error) {
	conv, err := s.Get(sessionID)
	if err != nil {
		return chat.Message{}, err
	}

	conv.mu.Lock()
	switch {
	case conv.phase == PhaseEnded:
		conv.mu.Unlock()
		return chat.Message{}, ErrSessionEnded
	case conv.sending:
		conv.mu.Unlock()
		return chat.Message{}, ErrSendInFlight
	case strings.TrimSpace(text) == "":
		conv.mu.Unlock()
		return chat.Message{}, ErrEmptyMessage
	case conv.credits.Cached() <= 0:
		conv.mu.Unlock()
		return chat.Message{}, ErrOutOfCredits
	}
	conv.sending = true
	conv.mu.Unlock()

	defer func() {
		conv.mu.Lock()
		conv.sending = false
		conv.mu.Unlock()
	}()

	// The ledger is authoritative; any refusal blocks the send before
	// state changes.
	if !conv.credits.Consume(ctx) {
		return chat.Message{}, ErrOutOfCredits
	}

	userMsg := chat.Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    chat.SenderUser,
		Timestamp: s.now().UTC(),
	}

	conv.mu.Lock()
	history := tail(conv.messages, historyWindow)
	conv.messages = append(conv.messages, userMsg)
	conv.mu.Unlock()

	s.tagEmotion(ctx, conv, userMsg)

	replyText, err := s.generateReply(ctx, conv, userMsg.Text, history)
	if err != nil {
		return chat.Message{}, err
	}

	therapistMsg := chat.Message{
		ID:        uuid.NewString(),
		Text:      replyText,
		Sender:    chat.SenderTherapist,
		Timestamp: s.now().UTC(),
	}

	conv.mu.Lock()
	conv.messages = append(conv.messages, therapistMsg)
	if conv.phase == PhaseIntroduction {
		conv.phase = PhaseActive
	}
	conv.mu.Unlock()

	conv.queue.Enqueue(therapistMsg.Text, s.fetcher())
	return therapistMsg, nil
}

// End finalizes the conversation. Idempotent: the record is emitted to
// history exactly once.
func (s *Service) End(ctx context.Context, sessionID string) (chat.Record, error) {
	conv, err := s.Get(sessionID)
	if err != nil {
		return chat.Record{}, err
	}

	conv.mu.Lock()
	if conv.phase == PhaseEnded {
		record := conv.record
		conv.mu.Unlock()
		return record, nil
	}

	record := chat.Finalize(conv.session, conv.messages, s.now().UTC())
	conv.record = record
	conv.phase = PhaseEnded
	conv.sadStreak = 0
	conv.mu.Unlock()

	s.recorder.AppendSession(ctx, record)
	log.Printf("[session] finalized session=%s duration=%dm messages=%d",
		record.ID, record.DurationMinutes, len(record.Messages))
	return record, nil
}

// generateReply asks the replier, mapping backend credit exhaustion to
// the out-of-credit state and transport errors to the fixed fallback.
func (s *Service) generateReply(ctx context.Context, conv *Conversation, userText string, history []chat.Message) (string, error) {
	if s.replier == nil {
		return reply.Fallback, nil
	}

	text, err := s.replier.Reply(ctx, userText, history, conv.category)
	if errors.Is(err, reply.ErrCreditExhausted) {
		// The backend outranks the local cache; reconcile it.
		conv.credits.Refresh(ctx)
		return "", ErrOutOfCredits
	}
	if err != nil {
		log.Printf("[session] reply backend error, using fallback: %v", err)
		return reply.Fallback, nil
	}
	return text, nil
}

// tagEmotion runs the keyword tagger over a user message and feeds the
// result into emotion history.
func (s *Service) tagEmotion(ctx context.Context, conv *Conversation, msg chat.Message) {
	decision := emotion.Analyze(msg.Text)
	s.recorder.AppendEmotion(ctx, conv.session.UserID, mood.Record{
		Emotion:    string(decision.Emotion),
		Confidence: decision.Confidence,
		Timestamp:  msg.Timestamp,
	})

	conv.mu.Lock()
	if decision.Emotion == emotion.Sad {
		conv.sadStreak++
	} else {
		conv.sadStreak = 0
	}
	conv.mu.Unlock()
}

func (s *Service) fetcher() playback.AudioFetcher {
	if s.synth == nil {
		return nil
	}
	return func(ctx context.Context, text string) ([]byte, error) {
		return s.synth.Synthesize(ctx, text)
	}
}

func tail(messages []chat.Message, n int) []chat.Message {
	if len(messages) > n {
		messages = messages[len(messages)-n:]
	}
	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied
}
