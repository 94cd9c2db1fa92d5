package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/puresoul/puresoul/backend/internal/handler/audio"
	categoryHandler "github.com/puresoul/puresoul/backend/internal/handler/category"
	creditHandler "github.com/puresoul/puresoul/backend/internal/handler/credit"
	"github.com/puresoul/puresoul/backend/internal/handler/dashboard"
	sessionHandler "github.com/puresoul/puresoul/backend/internal/handler/session"
	middlewarePkg "github.com/puresoul/puresoul/backend/internal/middleware"
	categoryModel "github.com/puresoul/puresoul/backend/internal/model/category"
	creditService "github.com/puresoul/puresoul/backend/internal/service/credit"
	"github.com/puresoul/puresoul/backend/internal/service/history"
	sessionService "github.com/puresoul/puresoul/backend/internal/service/session"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(categories categoryModel.Store, sessions *sessionService.Service, ledger creditService.Ledger, store *history.Store, allowance int) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		categoryHandler.New(categories).RegisterRoutes(api)
		sessionHandler.New(sessions).RegisterRoutes(api)
		creditHandler.New(ledger).RegisterRoutes(api)
		dashboard.New(store, ledger, allowance).RegisterRoutes(api)
		audio.New(sessions).RegisterRoutes(api)
	})

	return r
}
