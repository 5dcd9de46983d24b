package rest

import (
	"log/slog"
	"net/http"
)

// RouterConfig collects the pieces served by the HTTP listener.
type RouterConfig struct {
	Calculator *CalculatorHandler
	Health     *HealthHandler

	// Metrics is served on /metrics when set.
	Metrics http.Handler

	// Auth guards every route except the probes and /metrics when set.
	Auth func(http.Handler) http.Handler

	AllowedOrigin string
	Logger        *slog.Logger
}

// UnauthenticatedPaths are served without a token when auth is enabled.
var UnauthenticatedPaths = []string{"/healthz", "/readyz", "/metrics"}

// NewRouter builds the HTTP handler of the service.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	cfg.Health.RegisterRoutes(mux)
	cfg.Calculator.RegisterRoutes(mux)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	middlewares := []func(http.Handler) http.Handler{
		LoggingMiddleware(cfg.Logger),
		RecoveryMiddleware(cfg.Logger),
		CORSMiddleware(cfg.AllowedOrigin),
	}
	if cfg.Auth != nil {
		middlewares = append(middlewares, cfg.Auth)
	}
	return Chain(mux, middlewares...)
}
