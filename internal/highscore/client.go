package highscore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to a remote high-score server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the server at baseURL (e.g. "http://localhost:8080").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// submitResponse is the POST /highscore reply.
type submitResponse struct {
	Record
	NewRecord bool `json:"new_record"`
}

// Best implements Keeper.
func (c *Client) Best(ctx context.Context) (Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/highscore", nil)
	if err != nil {
		return Record{}, fmt.Errorf("highscore: build request: %w", err)
	}

	var rec Record
	if err := c.do(req, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Submit implements Keeper.
func (c *Client) Submit(ctx context.Context, rec Record) (Record, bool, error) {
	if err := rec.Validate(); err != nil {
		return Record{}, false, err
	}

	body, err := json.Marshal(rec.Normalized())
	if err != nil {
		return Record{}, false, fmt.Errorf("highscore: encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/highscore", bytes.NewReader(body))
	if err != nil {
		return Record{}, false, fmt.Errorf("highscore: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp submitResponse
	if err := c.do(req, &resp); err != nil {
		return Record{}, false, err
	}
	return resp.Record, resp.NewRecord, nil
}

// do sends req and decodes a 200 JSON reply into out.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("highscore: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("highscore: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("highscore: server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("highscore: server returned %d", resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("highscore: decode response: %w", err)
	}
	return nil
}
