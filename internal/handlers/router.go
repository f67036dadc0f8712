package handlers

import (
	"net/http"

	"portfolio/internal/config"
	"portfolio/internal/middleware"
	"portfolio/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handler struct {
	cfg      config.Config
	users    UserStore
	holdings HoldingStore
	ledger   LedgerStore
	auth     AuthService
	service  PortfolioService
	hub      *websocket.Hub
}

func New(cfg config.Config, users UserStore, holdings HoldingStore, ledger LedgerStore, auth AuthService, service PortfolioService, hub *websocket.Hub) *Handler {
	return &Handler{
		cfg:      cfg,
		users:    users,
		holdings: holdings,
		ledger:   ledger,
		auth:     auth,
		service:  service,
		hub:      hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	authed := middleware.Auth(h.auth)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(authed).Post("/logout", h.Logout)
		r.With(authed).Get("/me", h.Me)
	})
	router.With(authed).Get("/portfolio", h.ListPortfolio)
	router.With(authed).Post("/portfolio", h.AddHolding)
	router.With(authed).Put("/portfolio/{id}", h.UpdateHolding)
	router.With(authed).Delete("/portfolio/{id}", h.DeleteHolding)
	router.With(authed).Get("/transactions", h.ListTransactions)
	router.Get("/ws/portfolio", h.WSPortfolio)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}
