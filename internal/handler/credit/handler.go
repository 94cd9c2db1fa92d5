package credit

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	creditservice "github.com/puresoul/puresoul/backend/internal/service/credit"
	"github.com/puresoul/puresoul/backend/pkg/utils"
)

// Handler exposes the credit ledger over HTTP.
type Handler struct {
	ledger creditservice.Ledger
}

// New creates the credit handler.
func New(ledger creditservice.Ledger) *Handler {
	return &Handler{ledger: ledger}
}

// RegisterRoutes mounts the credit routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/credits", h.handleBalance)
	r.Post("/credits/use", h.handleUse)
	r.Post("/credits/buy", h.handleBuy)
}

// userID resolves the caller identity: header first, query fallback.
func userID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return r.URL.Query().Get("userId")
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	id := userID(r)

	balance, err := h.ledger.Balance(r.Context(), id)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	purchased, err := h.ledger.Purchased(r.Context(), id)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"credits":        balance,
		"totalPurchased": purchased,
	})
}

func (h *Handler) handleUse(w http.ResponseWriter, r *http.Request) {
	id := userID(r)

	balance, err := h.ledger.Consume(r.Context(), id)
	if errors.Is(err, creditservice.ErrInsufficientCredits) {
		utils.RespondJSON(w, http.StatusForbidden, map[string]any{
			"success": false,
			"message": "Insufficient credits",
			"credits": balance,
		})
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Credit deducted",
		"credits": balance,
	})
}

func (h *Handler) handleBuy(w http.ResponseWriter, r *http.Request) {
	id := userID(r)

	var payload struct {
		Amount int `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	balance, err := h.ledger.Add(r.Context(), id, payload.Amount)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Credits purchased",
		"credits": balance,
	})
}
