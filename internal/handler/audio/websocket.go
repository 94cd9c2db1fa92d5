package audio

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/puresoul/puresoul/backend/internal/playback"
	sessionservice "github.com/puresoul/puresoul/backend/internal/service/session"
	"github.com/puresoul/puresoul/backend/pkg/utils"
)

// Handler attaches a websocket connection as a conversation's audio
// sink: synthesized utterances stream to the client one at a time, and
// the client reports playback-ended signals back.
type Handler struct {
	sessions *sessionservice.Service
	upgrader websocket.Upgrader
}

// New creates the audio websocket handler.
func New(sessions *sessionservice.Service) *Handler {
	return &Handler{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the audio routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/session/{sessionID}/audio", h.handleConnect)
}

type controlMessage struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
}

func (h *Handler) handleConnect(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	conv, err := h.sessions.Get(sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[audio] websocket upgrade failed: %v", err)
		return
	}

	sink := newConnSink(conn)
	conv.AttachSink(sink)
	log.Printf("[audio] listener attached to session=%s", sessionID)

	// Read loop: the client's ended signals drive the playback queue.
	for {
		var msg controlMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		if msg.Type == "ended" {
			sink.playbackEnded()
		}
	}

	conv.AttachSink(playback.NopSink{})
	sink.playbackEnded()
	_ = conn.Close()
	log.Printf("[audio] listener detached from session=%s", sessionID)
}

// connSink plays audio by pushing it down a websocket connection.
type connSink struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	mu   sync.Mutex
	done chan struct{}
}

func newConnSink(conn *websocket.Conn) *connSink {
	return &connSink{conn: conn}
}

func (s *connSink) writeControl(msgType string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(controlMessage{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
	})
}

// Play pushes one utterance to the client and returns the channel its
// ended signal will close.
func (s *connSink) Play(audio []byte) (<-chan struct{}, error) {
	s.mu.Lock()
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	if err := s.writeControl("play"); err != nil {
		return nil, err
	}

	s.writeMu.Lock()
	err := s.conn.WriteMessage(websocket.BinaryMessage, audio)
	s.writeMu.Unlock()
	if err != nil {
		return nil, err
	}

	return done, nil
}

// Stop tells the client to halt the current utterance.
func (s *connSink) Stop() {
	if err := s.writeControl("stop"); err != nil {
		log.Printf("[audio] failed to send stop: %v", err)
	}
}

// Release tells the client to drop buffered audio for the last
// utterance.
func (s *connSink) Release() {
	if err := s.writeControl("release"); err != nil {
		log.Printf("[audio] failed to send release: %v", err)
	}
}

// playbackEnded resolves the current item's wait, if one is pending.
func (s *connSink) playbackEnded() {
	s.mu.Lock()
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	s.mu.Unlock()
}
