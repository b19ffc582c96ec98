// Package showdown fetches replay transcripts from the public replay
// server. Replays are served as plain protocol text at
// https://replay.pokemonshowdown.com/<id>.log.
package showdown

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const replayBaseURL = "https://replay.pokemonshowdown.com/"

// Client is a minimal replay-server client.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a replay client with a sane request timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchReplayLog downloads the raw protocol transcript for a replay, given
// either a bare replay id ("gen9vgc2026regfbo3-871128250") or a full
// replay URL with or without the .log suffix.
func (c *Client) FetchReplayLog(ctx context.Context, idOrURL string) (string, error) {
	u := LogURL(idOrURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch replay: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read replay: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return string(body), nil
	case http.StatusNotFound:
		return "", fmt.Errorf("replay not found: %s", u)
	default:
		snippet := string(body)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return "", fmt.Errorf("replay server: HTTP %d: %s", resp.StatusCode, snippet)
	}
}

// LogURL normalizes a replay id or URL to the .log transcript URL.
func LogURL(idOrURL string) string {
	u := strings.TrimSpace(idOrURL)
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = replayBaseURL + u
	}
	if !strings.HasSuffix(u, ".log") {
		u += ".log"
	}
	return u
}
