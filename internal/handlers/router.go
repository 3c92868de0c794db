package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"werewolf/internal/config"
	localMiddleware "werewolf/internal/middleware"
)

// RouterOptions allows customization of router setup for tests.
type RouterOptions struct {
	DisableRateLimiting  bool
	DisableRequestLogger bool
}

// SetupRouter creates the application router with all routes and middleware.
func SetupRouter(h *Handler, cfg *config.ServerConfig, opts *RouterOptions) *chi.Mux {
	if opts == nil {
		opts = &RouterOptions{}
	}

	r := chi.NewRouter()

	if !opts.DisableRequestLogger {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(localMiddleware.RequestSizeLimiter(cfg.Server.MaxRequestSize))
	r.Use(localMiddleware.SecurityHeaders())

	if !opts.DisableRateLimiting {
		rateLimiter := localMiddleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateLimitBurst)
		r.Use(rateLimiter.Middleware())
	}

	// Lobby and control operations
	r.Post("/api/games", h.CreateGame)
	r.Post("/api/games/{id}/join", h.JoinGame)
	r.Post("/api/games/{id}/leave", h.LeaveGame)
	r.Post("/api/games/{id}/start", h.StartGame)
	r.Post("/api/games/{id}/end", h.EndGame)

	// Submissions
	r.Post("/api/games/{id}/actions", h.SubmitNightAction)
	r.Post("/api/games/{id}/votes", h.SubmitDayVote)

	// Queries
	r.Get("/api/games/{id}", h.GetGame)
	r.Get("/api/games/{id}/players", h.GetPlayers)
	r.Get("/api/games/{id}/events", h.GetEvents)
	r.Get("/api/games/{id}/qr", h.GameQR)
	r.Get("/api/rooms/{room}/game", h.GetRoomGame)

	// SSE stream
	r.Get("/sse/games/{id}", h.StreamGame)

	// Health check endpoints
	r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
