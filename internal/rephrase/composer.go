package rephrase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/TEJA0811/Rephrase.AI/internal/provider"
	"github.com/TEJA0811/Rephrase.AI/internal/tone"
)

// Composer rewrites a message into a short, polite workplace message.
type Composer struct {
	completer provider.Completer
	stage     StageConfig
	timeout   time.Duration
}

func NewComposer(c provider.Completer, stage StageConfig, timeout time.Duration) *Composer {
	return &Composer{completer: c, stage: stage, timeout: timeout}
}

// Rephrase returns the provider's text trimmed and otherwise unchanged.
func (c *Composer) Rephrase(ctx context.Context, message string, t tone.Category) (string, error) {
	out, err := call(ctx, c.completer, c.timeout, "rephrase", provider.Request{
		Model:       c.stage.Model,
		Prompt:      RephrasePrompt(message, t),
		Temperature: c.stage.Temperature,
		MaxTokens:   c.stage.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("rephrase: %w", err)
	}
	return strings.TrimSpace(out), nil
}
