package simulation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// client is a thin JSON client for the scoreboard API.
type client struct {
	http    *http.Client
	baseURL string
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// do sends a request with an optional JSON body and decodes a JSON response
// into out when out is non-nil. Any status other than want is an error.
func (c *client) do(ctx context.Context, method, path string, body, out any, want int) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != want {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(raw))
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *client) health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil, http.StatusOK)
}

func (c *client) start(ctx context.Context, home, away string) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	req := map[string]string{"home_team": home, "away_team": away}
	if err := c.do(ctx, http.MethodPost, "/matches", req, &out, http.StatusCreated); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *client) updateScore(ctx context.Context, id string, home, away int) error {
	req := map[string]int{"home_score": home, "away_score": away}
	return c.do(ctx, http.MethodPut, "/matches/"+id+"/score", req, nil, http.StatusNoContent)
}

func (c *client) finish(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/matches/"+id, nil, nil, http.StatusNoContent)
}

func (c *client) board(ctx context.Context) ([]boardEntry, error) {
	var out []boardEntry
	if err := c.do(ctx, http.MethodGet, "/matches", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}
