// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"vestflow-engine/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(settlementHandler *handler.SettlementHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)                       // Add a request ID to the context
	r.Use(middleware.RealIP)                          // Use the real IP address
	r.Use(middleware.Logger)                          // Log HTTP requests
	r.Use(middleware.Recoverer)                       // Recover from panics and return 500
	r.Use(middleware.Timeout(handler.DefaultTimeout)) // Set a default timeout for requests

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Settlement trigger and history routes
	r.Route("/settlement", func(r chi.Router) {
		r.Post("/run", settlementHandler.RunSettlement)
		r.Get("/status", settlementHandler.GetRunStatus)
		r.Get("/runs", settlementHandler.GetRunLogs)
	})

	// Reporting surface for admin tooling
	r.Get("/earnings", settlementHandler.GetEarnings)
	r.Get("/users/{userID}/wallet", settlementHandler.GetUserWallet)

	return r
}
