package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/TEJA0811/Rephrase.AI/internal/config"
	"github.com/TEJA0811/Rephrase.AI/internal/provider"
)

// buildProvider returns the single inference backend selected by cfg.
func buildProvider(ctx context.Context, cfg config.Config, mock bool) (provider.Provider, error) {
	if mock {
		return &provider.MockProvider{
			Delay:   300 * time.Millisecond,
			Replies: map[string]string{cfg.ClassifierModel: "neutral"},
		}, nil
	}

	// Per-call deadlines come from the request context; this only guards
	// against a stuck connection.
	client := &http.Client{Timeout: 2 * cfg.CallTimeout}

	switch cfg.Provider {
	case "openai":
		return provider.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, client), nil
	case "gemini":
		g, err := provider.NewGeminiProvider(ctx, cfg.GeminiAPIKey, "", client)
		if err != nil {
			return nil, err
		}
		return g, nil
	case "claude":
		return &provider.ClaudeProvider{APIKey: cfg.ClaudeAPIKey, Client: client}, nil
	default:
		return nil, fmt.Errorf("provider: unknown %q", cfg.Provider)
	}
}
