package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	categorymodel "github.com/puresoul/puresoul/backend/internal/model/category"
	"github.com/puresoul/puresoul/backend/pkg/utils"
)

// Handler serves the support-category catalogue.
type Handler struct {
	store categorymodel.Store
}

// New creates the category handler.
func New(store categorymodel.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the category routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/categories", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.List())
}
