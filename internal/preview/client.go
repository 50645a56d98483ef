package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ai-stack/stackbuilder/internal/server/response"
	"github.com/ai-stack/stackbuilder/internal/stack"
)

// Client calls a remote preview server.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Preview posts s to /api/preview. A response with success false is
// returned as an error carrying the server's message.
func (c *Client) Preview(ctx context.Context, s stack.State) (*Result, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stack: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/preview", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("preview request failed: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		Result
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("preview server returned %s with an unreadable body: %w", response.StatusText(resp.StatusCode), err)
	}
	if !body.Success {
		msg := body.Error
		if msg == "" {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("preview failed (%s): %s", response.StatusText(resp.StatusCode), msg)
	}
	return &body.Result, nil
}
