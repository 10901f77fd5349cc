package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, route, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rephrase_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// StageDuration tracks remote completion latency per pipeline stage.
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rephrase_stage_duration_seconds",
		Help:    "Time spent waiting on the provider, by pipeline stage.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30},
	}, []string{"stage", "model"})

	// StageErrors counts provider failures per stage.
	StageErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rephrase_stage_errors_total",
		Help: "Provider calls that failed, by pipeline stage.",
	}, []string{"stage"})

	// TonesTotal counts classified messages by resulting category.
	TonesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rephrase_tone_total",
		Help: "Messages classified, by tone category.",
	}, []string{"tone"})

	// ToneFallbackTotal counts classifier outputs coerced to the fallback.
	ToneFallbackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rephrase_tone_fallback_total",
		Help: "Classifier outputs outside the category set, replaced by neutral.",
	})

	// InputChars tracks the distribution of message lengths.
	InputChars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rephrase_input_chars",
		Help:    "Number of characters in rephrase input messages.",
		Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 5000},
	})

	// ProviderAvailable tracks whether the configured provider is usable.
	ProviderAvailable = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "rephrase_provider_available",
		Help: "Whether the inference provider is available (1) or not (0).",
	}, []string{"provider"})
)
