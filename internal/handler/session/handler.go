package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	sessionservice "github.com/puresoul/puresoul/backend/internal/service/session"
	"github.com/puresoul/puresoul/backend/pkg/utils"
)

// Handler exposes the conversation lifecycle over HTTP.
type Handler struct {
	sessions *sessionservice.Service
}

// New creates the session handler.
func New(sessions *sessionservice.Service) *Handler {
	return &Handler{sessions: sessions}
}

// RegisterRoutes mounts the session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreate)
	r.Get("/session/{sessionID}/messages", h.handleTranscript)
	r.Post("/session/{sessionID}/messages", h.handleSend)
	r.Post("/session/{sessionID}/end", h.handleEnd)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID   string `json:"userId"`
		Category string `json:"category"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessions.Create(r.Context(), payload.UserID, payload.Category)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	messages, err := h.sessions.Transcript(sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	therapistMsg, err := h.sessions.Send(r.Context(), sessionID, payload.Text)
	if err != nil {
		utils.RespondError(w, sendErrorStatus(err), err.Error())
		return
	}

	conv, convErr := h.sessions.Get(sessionID)
	credits, sadStreak := 0, 0
	if convErr == nil {
		credits = conv.Credits().Cached()
		sadStreak = conv.SadStreak()
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"message":   therapistMsg,
		"credits":   credits,
		"sadStreak": sadStreak,
	})
}

func (h *Handler) handleEnd(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	record, err := h.sessions.End(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, record)
}

func sendErrorStatus(err error) int {
	switch {
	case errors.Is(err, sessionservice.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, sessionservice.ErrOutOfCredits):
		return http.StatusForbidden
	case errors.Is(err, sessionservice.ErrSendInFlight):
		return http.StatusConflict
	case errors.Is(err, sessionservice.ErrSessionEnded):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
