package gist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"NewsPipeline/internal/config"
	"NewsPipeline/internal/ports"
)

// Publisher implements ports.Publisher backed by the GitHub Gist API.
type Publisher struct {
	apiURL     string
	token      string
	httpClient *http.Client
}

var _ ports.Publisher = (*Publisher)(nil)

// NewPublisher builds a publisher from configuration.
func NewPublisher(cfg config.GistConfig, client *http.Client) *Publisher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Publisher{
		apiURL:     strings.TrimSuffix(cfg.APIURL, "/"),
		token:      cfg.Token,
		httpClient: client,
	}
}

// Publish patches the gist so it holds exactly the given files' contents.
// Files already on the gist but absent from the map are left untouched.
func (p *Publisher) Publish(ctx context.Context, gistID string, files map[string]string) error {
	if p == nil {
		return fmt.Errorf("gist publisher is nil")
	}
	if p.token == "" {
		return fmt.Errorf("gist publisher misconfigured: missing token")
	}
	if gistID == "" {
		return fmt.Errorf("gist id is empty")
	}

	payload := map[string]any{"files": map[string]any{}}
	fileEntries := payload["files"].(map[string]any)
	for name, content := range files {
		fileEntries[name] = map[string]string{"content": content}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal gist payload: %w", err)
	}

	url := fmt.Sprintf("%s/gists/%s", p.apiURL, gistID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "token "+p.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("update gist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("gist api error %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	return nil
}
