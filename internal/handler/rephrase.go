package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/TEJA0811/Rephrase.AI/internal/rephrase"
)

// Rephraser runs the classify-then-rewrite pipeline for one message.
type Rephraser interface {
	Run(ctx context.Context, message string) (rephrase.Result, error)
}

type rephraseRequest struct {
	// Pointer so that a missing field fails validation while "" passes.
	Message *string `json:"message" validate:"required"`
}

func Rephrase(p Rephraser, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rephraseRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		res, err := p.Run(r.Context(), *req.Message)
		if err != nil {
			log.Error("rephrase failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "rephrase failed")
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}
