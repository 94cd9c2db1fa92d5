package dashboard

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/puresoul/puresoul/backend/internal/analysis/wellness"
	"github.com/puresoul/puresoul/backend/internal/model/mood"
	creditservice "github.com/puresoul/puresoul/backend/internal/service/credit"
	"github.com/puresoul/puresoul/backend/internal/service/history"
	"github.com/puresoul/puresoul/backend/pkg/utils"
)

// Handler serves the analytics rollup and ingests detector emotion
// records.
type Handler struct {
	store     *history.Store
	ledger    creditservice.Ledger
	allowance int
}

// New creates the dashboard handler. allowance is the free starting
// credit grant, needed for the credits-used rollup.
func New(store *history.Store, ledger creditservice.Ledger, allowance int) *Handler {
	return &Handler{store: store, ledger: ledger, allowance: allowance}
}

// RegisterRoutes mounts the dashboard routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.handleReport)
	r.Post("/emotions", h.handleAppendEmotion)
}

func userID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return r.URL.Query().Get("userId")
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	id := userID(r)
	if id == "" {
		utils.RespondError(w, http.StatusBadRequest, "user id is required")
		return
	}

	records := h.store.Emotions(r.Context(), id)
	sessions := h.store.Sessions(r.Context(), id)
	report := wellness.BuildReport(records, sessions, time.Now())

	balance, err := h.ledger.Balance(r.Context(), id)
	if err != nil {
		utils.RespondError(w, http.StatusBadGateway, err.Error())
		return
	}
	purchased, err := h.ledger.Purchased(r.Context(), id)
	if err != nil {
		utils.RespondError(w, http.StatusBadGateway, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"report":                report,
		"credits":               balance,
		"totalCreditsPurchased": purchased,
		"totalCreditsUsed":      purchased + h.allowance - balance,
	})
}

func (h *Handler) handleAppendEmotion(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID     string    `json:"userId"`
		Emotion    string    `json:"emotion"`
		Confidence float64   `json:"confidence"`
		Timestamp  time.Time `json:"timestamp"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.UserID == "" {
		utils.RespondError(w, http.StatusBadRequest, "user id is required")
		return
	}

	record := h.store.AppendEmotion(r.Context(), payload.UserID, mood.Record{
		Emotion:    payload.Emotion,
		Confidence: payload.Confidence,
		Timestamp:  payload.Timestamp,
	})

	utils.RespondJSON(w, http.StatusCreated, record)
}
