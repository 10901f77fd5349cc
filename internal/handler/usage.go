package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/TEJA0811/Rephrase.AI/internal/tone"
	"github.com/TEJA0811/Rephrase.AI/internal/usage"
)

// UsageStore records accepted suggestions and serves daily aggregates.
type UsageStore interface {
	Record(ctx context.Context, e usage.Event) error
	Daily(ctx context.Context) ([]usage.DailyCount, error)
	DailyByTone(ctx context.Context) ([]usage.DailyToneCount, error)
}

// usageRequest mirrors what clients send when a suggestion is accepted.
// Message text fields may be present in the body but are not decoded.
type usageRequest struct {
	TS   int64  `json:"ts" validate:"required,gt=0"`
	User string `json:"user" validate:"required"`
	Tone string `json:"tone"`
}

func RecordUsage(s UsageStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req usageRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		e := usage.Event{At: time.UnixMilli(req.TS).UTC(), User: req.User}
		if req.Tone != "" {
			e.Tone, _ = tone.Normalize(req.Tone)
		}

		if err := s.Record(r.Context(), e); err != nil {
			log.Error("record usage failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "record usage failed")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func DailyStats(s UsageStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := s.Daily(r.Context())
		if err != nil {
			log.Error("daily stats failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "stats failed")
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func DailyToneStats(s UsageStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := s.DailyByTone(r.Context())
		if err != nil {
			log.Error("daily tone stats failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "stats failed")
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}
