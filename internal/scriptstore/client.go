// Package scriptstore is the HTTP client for the external script storage
// collaborator. Parsed scripts and their projections are stored as JSON
// documents under per-user keys; upload and retrieval UI lives elsewhere.
package scriptstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/scriptmentor/scriptparse/internal/projector"
	"github.com/scriptmentor/scriptparse/internal/screenplay"
)

// Client communicates with the script storage HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Record is the stored representation of one parsed script: the canonical
// model plus the derived views, so readers never re-parse.
type Record struct {
	ScriptID    string                 `json:"script_id"`
	UserID      string                 `json:"user_id"`
	Filename    string                 `json:"filename"`
	Title       string                 `json:"title,omitempty"`
	Format      string                 `json:"format"`
	ContentHash string                 `json:"content_hash"`
	CreatedAt   string                 `json:"created_at"`
	Screenplay  *screenplay.Screenplay `json:"screenplay"`
	Web         *projector.WebView     `json:"web"`
	Analysis    *projector.Analysis    `json:"analysis"`
	Fountain    string                 `json:"fountain"`
}

// Summary is the listing view of a stored script.
type Summary struct {
	ScriptID   string `json:"script_id"`
	Title      string `json:"title,omitempty"`
	Filename   string `json:"filename"`
	SceneCount int    `json:"scene_count"`
	CreatedAt  string `json:"created_at"`
}

// RetryableError indicates a transient storage failure worth retrying.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable store error (status %d): %s", e.StatusCode, e.Message)
}

// PutScript stores or replaces a parsed script record.
func (c *Client) PutScript(ctx context.Context, rec Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	u := fmt.Sprintf("%s/scripts/%s/%s", c.baseURL, url.PathEscape(rec.UserID), url.PathEscape(rec.ScriptID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("put script: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp, http.StatusOK, http.StatusCreated); err != nil {
		return fmt.Errorf("put script %s: %w", rec.ScriptID, err)
	}
	return nil
}

// GetScript retrieves a stored script. A missing script returns (nil, nil).
func (c *Client) GetScript(ctx context.Context, userID, scriptID string) (*Record, error) {
	u := fmt.Sprintf("%s/scripts/%s/%s", c.baseURL, url.PathEscape(userID), url.PathEscape(scriptID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get script: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if err := checkStatus(resp, http.StatusOK); err != nil {
		return nil, fmt.Errorf("get script %s: %w", scriptID, err)
	}

	var rec Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &rec, nil
}

// ListScripts lists stored scripts for a user.
func (c *Client) ListScripts(ctx context.Context, userID string, limit int) ([]Summary, error) {
	u := fmt.Sprintf("%s/scripts/%s", c.baseURL, url.PathEscape(userID))
	if limit > 0 {
		u += fmt.Sprintf("?limit=%d", limit)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list scripts: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp, http.StatusOK); err != nil {
		return nil, fmt.Errorf("list scripts for %s: %w", userID, err)
	}

	var result struct {
		Scripts []Summary `json:"scripts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}
	return result.Scripts, nil
}

// DeleteScript removes a stored script.
func (c *Client) DeleteScript(ctx context.Context, userID, scriptID string) error {
	u := fmt.Sprintf("%s/scripts/%s/%s", c.baseURL, url.PathEscape(userID), url.PathEscape(scriptID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete script: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp, http.StatusOK, http.StatusNoContent); err != nil {
		return fmt.Errorf("delete script %s: %w", scriptID, err)
	}
	return nil
}

func checkStatus(resp *http.Response, allowed ...int) error {
	for _, code := range allowed {
		if resp.StatusCode == code {
			return nil
		}
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return &RetryableError{StatusCode: resp.StatusCode, Message: string(body)}
	}
	return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
}

// Close releases any resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
