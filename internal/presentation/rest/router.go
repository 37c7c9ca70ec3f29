package rest

import (
	"log/slog"
	"net/http"
)

// RouterConfig collects what the HTTP server exposes.
type RouterConfig struct {
	Analysis *AnalysisHandler
	Health   *HealthHandler
	// Metrics serves /metrics when set.
	Metrics http.Handler
	Logger  *slog.Logger
	// RateLimit is requests per second per client on /api routes; 0 disables it.
	RateLimit int
}

// NewRouter builds the HTTP handler. Probes and /metrics bypass the rate limiter.
func NewRouter(cfg RouterConfig) http.Handler {
	api := http.NewServeMux()
	cfg.Analysis.RegisterRoutes(api)

	var apiHandler http.Handler = api
	if cfg.RateLimit > 0 {
		apiHandler = RateLimitMiddleware(NewRateLimiter(cfg.RateLimit))(apiHandler)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	cfg.Health.RegisterRoutes(mux)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	return LoggingMiddleware(cfg.Logger)(mux)
}
