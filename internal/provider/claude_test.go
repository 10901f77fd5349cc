package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClaude(url string) *ClaudeProvider {
	return &ClaudeProvider{
		BaseURL: url,
		APIKey:  "sk-test",
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func TestClaudeProviderComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1/messages" {
			t.Errorf("expected /v1/messages, got %s", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "sk-test" {
			t.Errorf("x-api-key: got %q, want %q", got, "sk-test")
		}
		if got := r.Header.Get("anthropic-version"); got != claudeAPIVersion {
			t.Errorf("anthropic-version: got %q, want %q", got, claudeAPIVersion)
		}

		var req claudeMessagesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}

		if req.Model != "claude-haiku" {
			t.Errorf("model: got %q, want %q", req.Model, "claude-haiku")
		}
		if len(req.Messages) != 1 {
			t.Errorf("expected 1 message, got %d", len(req.Messages))
			return
		}
		if req.Messages[0].Role != "user" {
			t.Errorf("message role: got %q, want %q", req.Messages[0].Role, "user")
		}
		if req.MaxTokens != 120 {
			t.Errorf("max_tokens: got %d, want 120", req.MaxTokens)
		}
		if req.Temperature != 0.5 {
			t.Errorf("temperature: got %v, want 0.5", req.Temperature)
		}

		resp := claudeMessagesResponse{
			Content: []claudeContentBlock{
				{Type: "text", Text: "  Could you share an update when you get a chance?\n"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	got, err := newTestClaude(srv.URL).Complete(context.Background(), Request{
		Model:       "claude-haiku",
		Prompt:      "Any update?",
		Temperature: 0.5,
		MaxTokens:   120,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	want := "Could you share an update when you get a chance?"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestClaudeProviderCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"type": "error",
			"error": map[string]any{
				"type":    "authentication_error",
				"message": "invalid x-api-key",
			},
		})
	}))
	defer srv.Close()

	_, err := newTestClaude(srv.URL).Complete(context.Background(), Request{Prompt: "hello"})
	if err == nil {
		t.Fatal("expected error on 401 response, got nil")
	}
	if got := err.Error(); got != "claude: API error: invalid x-api-key" {
		t.Errorf("error: got %q", got)
	}
}

func TestClaudeProviderCompleteEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(claudeMessagesResponse{Content: []claudeContentBlock{}})
	}))
	defer srv.Close()

	_, err := newTestClaude(srv.URL).Complete(context.Background(), Request{Prompt: "hello"})
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("got %v, want ErrEmptyResponse", err)
	}
}

func TestClaudeProviderContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClaude(srv.URL).Complete(ctx, Request{Prompt: "hello"})
	if err == nil {
		t.Error("expected error on cancelled context, got nil")
	}
}

func TestClaudeProviderListModelsPaginates(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/v1/models" {
			t.Errorf("expected /v1/models, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("after_id") == "" {
			w.Write([]byte(`{"data":[{"id":"claude-a"},{"id":"claude-b"}],"has_more":true,"last_id":"claude-b"}`))
			return
		}
		if got := r.URL.Query().Get("after_id"); got != "claude-b" {
			t.Errorf("after_id: got %q, want %q", got, "claude-b")
		}
		w.Write([]byte(`{"data":[{"id":"claude-c"}],"has_more":false}`))
	}))
	defer srv.Close()

	ids, err := newTestClaude(srv.URL).ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if len(ids) != 3 || ids[0] != "claude-a" || ids[2] != "claude-c" {
		t.Errorf("got %v", ids)
	}
	if calls != 2 {
		t.Errorf("calls: got %d, want 2", calls)
	}
}

func TestClaudeProviderAvailable(t *testing.T) {
	if !(&ClaudeProvider{APIKey: "sk-test"}).Available() {
		t.Error("expected available when API key is set")
	}
	if (&ClaudeProvider{}).Available() {
		t.Error("expected not available when API key is empty")
	}
}

func TestClaudeProviderListModelsEscapesCursor(t *testing.T) {
	const cursor = "claude b&limit=1#x"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("limit"); got != "100" {
			t.Errorf("limit: got %q, want %q", got, "100")
		}
		w.Header().Set("Content-Type", "application/json")
		if q.Get("after_id") == "" {
			w.Write([]byte(`{"data":[{"id":"claude-a"}],"has_more":true,"last_id":"claude b&limit=1#x"}`))
			return
		}
		if got := q.Get("after_id"); got != cursor {
			t.Errorf("after_id: got %q, want %q", got, cursor)
		}
		w.Write([]byte(`{"data":[{"id":"claude-b"}],"has_more":false}`))
	}))
	defer srv.Close()

	ids, err := newTestClaude(srv.URL).ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if len(ids) != 2 || ids[1] != "claude-b" {
		t.Errorf("got %v", ids)
	}
}
