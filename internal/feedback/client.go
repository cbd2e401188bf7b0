// Package feedback ships per-scene analysis to the external mentor backend.
// Prompt construction happens on that side; this client only delivers the
// structured context.
package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/scriptmentor/scriptparse/internal/projector"
)

// Client calls the mentor feedback API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	Stats *Stats
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		Stats: NewStats(time.Hour),
	}
}

// AnalysisRequest is one feedback submission: a token-budgeted batch of
// scene analysis plus the document-level character statistics.
type AnalysisRequest struct {
	UserID     string                        `json:"user_id"`
	ScriptID   string                        `json:"script_id"`
	Title      string                        `json:"title,omitempty"`
	Scenes     []projector.SceneAnalysis     `json:"scenes"`
	Characters []projector.CharacterAnalysis `json:"characters"`
	Structure  []projector.SceneStructure    `json:"structure"`
}

// RetryableError indicates a transient backend failure worth retrying.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable feedback error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

// SendAnalysis posts one analysis batch to the mentor backend and records
// the call latency.
func (c *Client) SendAnalysis(ctx context.Context, req AnalysisRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/feedback", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if c.Stats != nil {
		c.Stats.Record(time.Since(start).Milliseconds())
	}
	if err != nil {
		return fmt.Errorf("feedback api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return &RetryableError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return fmt.Errorf("feedback api status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
