package mediacloud

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"NewsPipeline/internal/config"
	"NewsPipeline/internal/domain"
	"NewsPipeline/internal/fetcher"
)

const (
	defaultPageSize = 100
	maxAttempts     = 3
)

// Client queries a MediaCloud-style story search API and maps stories into
// article records.
type Client struct {
	baseURL   string
	apiKey    string
	client    *http.Client
	pageSize  int
	retryWait time.Duration
}

var _ fetcher.Fetcher = (*Client)(nil)

// NewClient builds a client from configuration; the HTTP client defaults to a
// 30s timeout when nil.
func NewClient(cfg config.MediaCloudConfig, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		client:    client,
		pageSize:  defaultPageSize,
		retryWait: 5 * time.Second,
	}
}

// Name identifies the strategy inside the registry.
func (c *Client) Name() string {
	return "mediacloud"
}

// FetchDay pages through the story-list endpoint for one calendar day.
// Non-English stories are dropped; records missing a URL pass through so the
// merge step can count them.
func (c *Client) FetchDay(ctx context.Context, req fetcher.Request) ([]domain.ArticleRecord, error) {
	sourceIDs := sortedSourceIDs(req.Outlets)

	var out []domain.ArticleRecord
	token := ""
	for {
		stories, next, err := c.storyList(ctx, req, sourceIDs, token)
		if err != nil {
			return nil, err
		}
		for _, st := range stories {
			if st.Language != "" && !strings.EqualFold(st.Language, "en") {
				continue
			}
			out = append(out, domain.ArticleRecord{
				URL:         st.URL,
				Title:       st.Title,
				MediaURL:    st.MediaURL,
				PublishDate: truncateDate(st.PublishDate),
				Topic:       req.Topic,
			})
		}
		if next == "" {
			break
		}
		token = next
	}
	return out, nil
}

type story struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	MediaURL    string `json:"media_url"`
	PublishDate string `json:"publish_date"`
	Language    string `json:"language"`
}

type storyListResponse struct {
	Stories         []story `json:"stories"`
	PaginationToken string  `json:"pagination_token"`
}

func (c *Client) storyList(ctx context.Context, req fetcher.Request, sourceIDs []int, token string) ([]story, string, error) {
	query := url.Values{}
	query.Set("q", req.Query)
	query.Set("start_date", req.Day.String())
	query.Set("end_date", req.Day.String())
	query.Set("page_size", strconv.Itoa(c.pageSize))
	if len(sourceIDs) > 0 {
		query.Set("source_ids", joinInts(sourceIDs))
	}
	if token != "" {
		query.Set("pagination_token", token)
	}
	endpoint := c.baseURL + "/search/story-list?" + query.Encode()

	for attempt := 1; ; attempt++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, "", fmt.Errorf("build request: %w", err)
		}
		httpReq.Header.Set("Authorization", "Token "+c.apiKey)
		httpReq.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(httpReq)
		if err != nil {
			return nil, "", fmt.Errorf("story list: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests && attempt < maxAttempts {
			resp.Body.Close()
			select {
			case <-ctx.Done():
				return nil, "", ctx.Err()
			case <-time.After(c.retryWait * time.Duration(attempt)):
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			resp.Body.Close()
			return nil, "", fmt.Errorf("mediacloud error %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
		}

		var payload storyListResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			resp.Body.Close()
			return nil, "", fmt.Errorf("decode story list: %w", err)
		}
		resp.Body.Close()
		return payload.Stories, payload.PaginationToken, nil
	}
}

func truncateDate(value string) string {
	if len(value) > 10 {
		return value[:10]
	}
	return value
}

func sortedSourceIDs(outlets map[string]int) []int {
	ids := make([]int, 0, len(outlets))
	for _, id := range outlets {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
