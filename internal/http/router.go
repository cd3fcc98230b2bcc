package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/auction-sheets-service/internal/http/handlers"
	"github.com/preston-bernstein/auction-sheets-service/internal/http/middleware"
	"github.com/preston-bernstein/auction-sheets-service/internal/metrics"
)

// RouterConfig collects the handlers and middleware settings for NewRouter.
// Admin and Snapshots are optional; their routes are only mounted when set.
type RouterConfig struct {
	Handler     *handlers.Handler
	Admin       *handlers.AdminHandler
	Snapshots   *handlers.SnapshotHandler
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
	CORSOrigins []string
	RateLimiter *middleware.IPRateLimiter
}

// NewRouter registers the HTTP API on a chi router.
func NewRouter(cfg RouterConfig) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging(cfg.Logger, cfg.Metrics))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.NotFound(handlers.NotFound(cfg.Logger))
	r.MethodNotAllowed(handlers.MethodNotAllowed(cfg.Logger))

	h := cfg.Handler
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimiter))

		r.Route("/players", func(r chi.Router) {
			r.Get("/", h.Players)
			r.Get("/unsold", h.UnsoldPlayers)
		})
		r.Route("/teams", func(r chi.Router) {
			r.Get("/", h.Teams)
			r.Get("/summary", h.TeamSummaries)
			r.Get("/{teamId}", h.TeamByID)
			r.Get("/{teamId}/players", h.TeamPlayers)
		})
		r.Get("/leaderboard", h.Leaderboard)

		if cfg.Snapshots != nil {
			r.Route("/snapshots", func(r chi.Router) {
				r.Get("/", cfg.Snapshots.Manifest)
				r.Get("/latest", cfg.Snapshots.Latest)
				r.Get("/{date}", cfg.Snapshots.ByDate)
			})
		}

		if cfg.Admin != nil {
			r.Route("/admin", func(r chi.Router) {
				r.Post("/cache/clear", cfg.Admin.ClearCache)
				r.Post("/snapshots/refresh", cfg.Admin.RefreshSnapshot)
			})
		}
	})
	return r
}
