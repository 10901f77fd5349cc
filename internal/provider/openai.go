package provider

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider talks to the OpenAI chat completions API, or to any
// OpenAI-compatible server (llama.cpp, Ollama /v1) when BaseURL is set.
type OpenAIProvider struct {
	inner   *openai.Client
	apiKey  string
	baseURL string
}

// NewOpenAIProvider builds a provider around a single reusable client. The
// client holds no per-request state and is safe for concurrent use.
func NewOpenAIProvider(apiKey, baseURL string, client *http.Client) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if client != nil {
		cfg.HTTPClient = client
	}
	return &OpenAIProvider{
		inner:   openai.NewClientWithConfig(cfg),
		apiKey:  apiKey,
		baseURL: cfg.BaseURL,
	}
}

func (o *OpenAIProvider) Name() string {
	return fmt.Sprintf("OpenAI (%s)", o.baseURL)
}

func (o *OpenAIProvider) Complete(ctx context.Context, req Request) (string, error) {
	resp, err := o.inner.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: wireTemperature(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w", ErrEmptyResponse)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (o *OpenAIProvider) ListModels(ctx context.Context) ([]string, error) {
	list, err := o.inner.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("openai: list models: %w", err)
	}
	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// Available only checks that a credential is configured; a self-hosted
// OpenAI-compatible server may not require one.
func (o *OpenAIProvider) Available() bool {
	return o.apiKey != "" || o.baseURL != openai.DefaultConfig("").BaseURL
}

// wireTemperature maps 0 to the smallest positive float32. The request
// field is omitempty, so a literal 0 would be dropped and the API default
// of 1 applied instead.
func wireTemperature(t float32) float32 {
	if t <= 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}
