package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/TEJA0811/Rephrase.AI/internal/provider"
)

type modelsResponse struct {
	Provider string   `json:"provider"`
	Models   []string `json:"models"`
}

func Models(p provider.Provider, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := p.ListModels(r.Context())
		if err != nil {
			log.Error("list models failed", zap.Error(err))
			writeError(w, http.StatusBadGateway, "list models failed")
			return
		}
		if ids == nil {
			ids = []string{}
		}
		writeJSON(w, http.StatusOK, modelsResponse{Provider: p.Name(), Models: ids})
	}
}
