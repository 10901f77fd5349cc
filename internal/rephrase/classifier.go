package rephrase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TEJA0811/Rephrase.AI/internal/metrics"
	"github.com/TEJA0811/Rephrase.AI/internal/provider"
	"github.com/TEJA0811/Rephrase.AI/internal/tone"
)

// StageConfig is the completion setup for one pipeline stage.
type StageConfig struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

// Classifier maps a message onto a tone.Category with one deterministic
// completion call.
type Classifier struct {
	completer provider.Completer
	stage     StageConfig
	timeout   time.Duration
	log       *zap.Logger
}

func NewClassifier(c provider.Completer, stage StageConfig, timeout time.Duration, log *zap.Logger) *Classifier {
	return &Classifier{completer: c, stage: stage, timeout: timeout, log: log}
}

// Classify always returns a member of tone.Categories when err is nil.
// Output outside the set becomes tone.Fallback; only transport failures
// are errors.
func (c *Classifier) Classify(ctx context.Context, message string) (tone.Category, error) {
	raw, err := call(ctx, c.completer, c.timeout, "classify", provider.Request{
		Model:       c.stage.Model,
		Prompt:      ClassifyPrompt(message),
		Temperature: c.stage.Temperature,
		MaxTokens:   c.stage.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("classify: %w", err)
	}

	category, ok := tone.Normalize(raw)
	if !ok {
		metrics.ToneFallbackTotal.Inc()
		c.log.Debug("classifier output outside category set",
			zap.String("raw", raw),
			zap.Stringer("fallback", category),
		)
	}
	metrics.TonesTotal.WithLabelValues(string(category)).Inc()
	return category, nil
}

// call runs one completion under its own deadline and records its latency.
func call(ctx context.Context, c provider.Completer, timeout time.Duration, stage string, req provider.Request) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := c.Complete(ctx, req)
	metrics.StageDuration.WithLabelValues(stage, req.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.StageErrors.WithLabelValues(stage).Inc()
		return "", err
	}
	return out, nil
}
