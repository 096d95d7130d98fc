package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 60 * time.Second

// Client is the HTTP-backed implementation of the three AI service
// contracts, talking to a single upstream base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the AI service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// AnalyzeIntent calls the intent-analysis endpoint.
func (c *Client) AnalyzeIntent(ctx context.Context, text string, opts AnalyzeOptions) (*IntentAnalysis, error) {
	payload := map[string]any{
		"text":    text,
		"persona": opts.Persona,
		"history": opts.History,
	}

	body, err := c.post(ctx, "/v1/intent/analyze", payload)
	if err != nil {
		return nil, err
	}

	var analysis IntentAnalysis
	if err := json.Unmarshal(body, &analysis); err != nil {
		return nil, fmt.Errorf("ai: malformed intent analysis: %w", err)
	}

	return &analysis, nil
}

// BuildWorkflow calls the template-based workflow builder endpoint.
func (c *Client) BuildWorkflow(ctx context.Context, req BuildRequest) (*BuiltWorkflow, error) {
	body, err := c.post(ctx, "/v1/workflows/build", req)
	if err != nil {
		return nil, err
	}

	var built BuiltWorkflow
	if err := json.Unmarshal(body, &built); err != nil {
		return nil, fmt.Errorf("ai: malformed built workflow: %w", err)
	}

	return &built, nil
}

// Chat calls the conversational endpoint and splits the response into the
// tagged union.
func (c *Client) Chat(ctx context.Context, text string, opts ChatOptions) (*ChatResult, error) {
	payload := map[string]any{
		"text":      text,
		"chat_mode": opts.ChatMode,
	}

	body, err := c.post(ctx, "/v1/chat", payload)
	if err != nil {
		return nil, err
	}

	return DecodeChatResponse(body)
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ai: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ai: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ai: %s returned status %d", path, resp.StatusCode)
	}

	return body, nil
}
