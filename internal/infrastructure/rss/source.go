package rss

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"NewsPipeline/internal/domain"
	"NewsPipeline/internal/fetcher"
)

// Source fetches configured RSS/Atom feeds and keeps the items published on
// the requested day.
type Source struct {
	parser *gofeed.Parser
}

var _ fetcher.Fetcher = (*Source)(nil)

// NewSource wires an HTTP client; the default carries a 20s timeout.
func NewSource(client *http.Client) *Source {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = "NewsPipeline/1.0"
	return &Source{parser: parser}
}

// Name identifies the strategy inside the registry.
func (s *Source) Name() string {
	return "rss"
}

// FetchDay parses every configured feed and maps matching items into article
// records. Items without a parseable publish time are skipped.
func (s *Source) FetchDay(ctx context.Context, req fetcher.Request) ([]domain.ArticleRecord, error) {
	var out []domain.ArticleRecord
	for _, feedURL := range req.Feeds {
		feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			return nil, fmt.Errorf("feed %s: %w", feedURL, err)
		}

		for _, item := range feed.Items {
			published := item.PublishedParsed
			if published == nil {
				published = item.UpdatedParsed
			}
			if published == nil {
				continue
			}
			day := domain.DateOf(*published)
			if !day.Equal(req.Day) {
				continue
			}

			link := stripTracking(strings.TrimSpace(item.Link))
			out = append(out, domain.ArticleRecord{
				URL:         link,
				Title:       strings.TrimSpace(item.Title),
				Description: strings.TrimSpace(item.Description),
				MediaURL:    hostDomain(link),
				PublishDate: day.String(),
				Topic:       req.Topic,
			})
		}
	}
	return out, nil
}

func stripTracking(link string) string {
	if idx := strings.Index(link, "?utm_"); idx > 0 {
		return link[:idx]
	}
	return link
}

func hostDomain(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}
