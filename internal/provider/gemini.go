package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// GeminiProvider connects to the Gemini API through the genai SDK.
type GeminiProvider struct {
	client *genai.Client
	apiKey string
}

// NewGeminiProvider creates the SDK client once. baseURL is only set in
// tests or when routing through a proxy.
func NewGeminiProvider(ctx context.Context, apiKey, baseURL string, httpClient *http.Client) (*GeminiProvider, error) {
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiProvider{client: client, apiKey: apiKey}, nil
}

func (g *GeminiProvider) Name() string {
	return "Gemini"
}

func (g *GeminiProvider) Complete(ctx context.Context, req Request) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: int32(req.MaxTokens),
		CandidateCount:  1,
	})
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}
	return strings.TrimSpace(resp.Text()), nil
}

// ListModels strips the "models/" resource prefix so the returned ids can be
// used directly as Request.Model.
func (g *GeminiProvider) ListModels(ctx context.Context) ([]string, error) {
	var ids []string
	for m, err := range g.client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("gemini: list models: %w", err)
		}
		ids = append(ids, strings.TrimPrefix(m.Name, "models/"))
	}
	return ids, nil
}

func (g *GeminiProvider) Available() bool {
	return g.client != nil && g.apiKey != ""
}
