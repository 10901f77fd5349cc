//go:generate go run go.uber.org/mock/mockgen -source=provider.go -destination=mocks/mock_provider.go -package=mocks
package provider

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the remote service answers without a
// single candidate completion.
var ErrEmptyResponse = errors.New("empty response")

// Request is a single-message completion exchange. There is no
// conversation history; Prompt is sent as one user message.
type Request struct {
	Model       string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// Completer issues one completion call and returns the trimmed text of the
// first candidate.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ModelLister returns every model identifier the configured credential can
// access.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// Provider is a remote inference backend.
type Provider interface {
	Completer
	ModelLister

	// Name returns a human-readable name for this provider.
	Name() string

	// Available reports whether this provider is ready to serve requests.
	Available() bool
}
