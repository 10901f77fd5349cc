package provider

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// MockProvider returns simulated responses with a configurable delay.
// Used for development without a real inference backend.
type MockProvider struct {
	Delay time.Duration

	// Replies maps a model id to a canned answer. Models without an entry
	// get the last line of the prompt back, unquoted and capitalized.
	Replies map[string]string
}

func (m *MockProvider) Name() string { return "Mock" }

func (m *MockProvider) Complete(ctx context.Context, req Request) (string, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", fmt.Errorf("mock: %w", ctx.Err())
		}
	}

	if reply, ok := m.Replies[req.Model]; ok {
		return strings.TrimSpace(reply), nil
	}

	prompt := strings.TrimSpace(req.Prompt)
	if i := strings.LastIndex(prompt, "\n"); i >= 0 {
		prompt = prompt[i+1:]
	}
	echoed := strings.TrimSpace(strings.Trim(prompt, `"`))
	if len(echoed) > 0 && echoed[0] >= 'a' && echoed[0] <= 'z' {
		echoed = strings.ToUpper(echoed[:1]) + echoed[1:]
	}

	return echoed, nil
}

func (m *MockProvider) ListModels(ctx context.Context) ([]string, error) {
	return []string{"mock"}, nil
}

func (m *MockProvider) Available() bool { return true }
