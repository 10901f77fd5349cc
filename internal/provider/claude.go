package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	claudeDefaultBaseURL = "https://api.anthropic.com"
	claudeAPIVersion     = "2023-06-01"
)

// ClaudeProvider connects to the Anthropic Messages API.
type ClaudeProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeMessagesRequest struct {
	Model       string          `json:"model"`
	Messages    []claudeMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float32         `json:"temperature"`
}

type claudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeMessagesResponse struct {
	Content []claudeContentBlock `json:"content"`
}

type claudeModelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
	HasMore bool   `json:"has_more"`
	LastID  string `json:"last_id"`
}

type claudeErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *ClaudeProvider) Name() string {
	return "Claude"
}

func (c *ClaudeProvider) Complete(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(claudeMessagesRequest{
		Model: req.Model,
		Messages: []claudeMessage{
			{Role: "user", Content: req.Prompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("claude: marshal request: %w", err)
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, "/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	var msgResp claudeMessagesResponse
	if err := c.do(httpReq, &msgResp); err != nil {
		return "", err
	}

	if len(msgResp.Content) == 0 {
		return "", fmt.Errorf("claude: %w", ErrEmptyResponse)
	}

	var result strings.Builder
	for _, block := range msgResp.Content {
		if block.Type == "text" {
			result.WriteString(block.Text)
		}
	}

	return strings.TrimSpace(result.String()), nil
}

// ListModels follows the after_id cursor until the API reports no more
// pages.
func (c *ClaudeProvider) ListModels(ctx context.Context) ([]string, error) {
	var ids []string
	after := ""
	for {
		q := url.Values{"limit": {"100"}}
		if after != "" {
			q.Set("after_id", after)
		}
		httpReq, err := c.newRequest(ctx, http.MethodGet, "/v1/models?"+q.Encode(), nil)
		if err != nil {
			return nil, err
		}
		var page claudeModelsResponse
		if err := c.do(httpReq, &page); err != nil {
			return nil, err
		}
		for _, m := range page.Data {
			ids = append(ids, m.ID)
		}
		if !page.HasMore || page.LastID == "" {
			return ids, nil
		}
		after = page.LastID
	}
}

func (c *ClaudeProvider) Available() bool {
	return c.APIKey != ""
}

func (c *ClaudeProvider) newRequest(ctx context.Context, method, path string, body *bytes.Reader) (*http.Request, error) {
	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = claudeDefaultBaseURL
	}
	endpoint := strings.TrimRight(baseURL, "/") + path

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("claude: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", claudeAPIVersion)
	return req, nil
}

func (c *ClaudeProvider) do(req *http.Request, out any) error {
	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("claude: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp claudeErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error.Message == "" {
			return fmt.Errorf("claude: unexpected status %d", resp.StatusCode)
		}
		return fmt.Errorf("claude: API error: %s", errResp.Error.Message)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("claude: decode response: %w", err)
	}
	return nil
}
