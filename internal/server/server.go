package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/TEJA0811/Rephrase.AI/internal/handler"
	"github.com/TEJA0811/Rephrase.AI/internal/middleware"
	"github.com/TEJA0811/Rephrase.AI/internal/provider"
)

// DefaultTimeout bounds a whole request, both completion calls included.
const DefaultTimeout = 65 * time.Second

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Rephraser handler.Rephraser
	Provider  provider.Provider

	// Usage is optional. When nil the usage and stats routes are not mounted.
	Usage handler.UsageStore

	APIKey  string
	Timeout time.Duration
	Logger  *zap.Logger
}

// New wires handlers with the full middleware chain.
func New(d Deps) http.Handler {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	r := chi.NewRouter()
	r.Use(middleware.Metrics)

	r.Get("/health", handler.Health(d.Provider))
	r.Get("/models", handler.Models(d.Provider, log))
	r.Post("/rephrase", handler.Rephrase(d.Rephraser, log))
	r.Handle("/metrics", promhttp.Handler())

	if d.Usage != nil {
		r.Post("/usage", handler.RecordUsage(d.Usage, log))
		r.Get("/stats/daily", handler.DailyStats(d.Usage, log))
		r.Get("/stats/daily-tone", handler.DailyToneStats(d.Usage, log))
	}

	return middleware.Chain(r, log, d.APIKey, timeout)
}
