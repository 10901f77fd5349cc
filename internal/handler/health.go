package handler

import (
	"net/http"

	"github.com/TEJA0811/Rephrase.AI/internal/metrics"
	"github.com/TEJA0811/Rephrase.AI/internal/provider"
)

type providerStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type healthResponse struct {
	Status   string         `json:"status"`
	Provider providerStatus `json:"provider"`
}

func Health(p provider.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := providerStatus{Name: p.Name(), Available: p.Available()}
		gauge := 0.0
		if s.Available {
			gauge = 1
		} else {
			s.Reason = unavailableReason(p)
		}
		metrics.ProviderAvailable.WithLabelValues(s.Name).Set(gauge)

		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Provider: s})
	}
}

func unavailableReason(p provider.Provider) string {
	switch p.(type) {
	case *provider.ClaudeProvider, *provider.GeminiProvider:
		return "no API key"
	case *provider.OpenAIProvider:
		return "no API key or base URL"
	default:
		return "unavailable"
	}
}
