package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsPipeline/internal/domain"
	"NewsPipeline/internal/ports"
)

const describeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Describer downloads an article page and extracts its meta description and
// title. Outlets that block plain bots usually still answer a browser-like
// request, so the client presents browser headers.
type Describer struct {
	client *http.Client
}

var _ ports.Describer = (*Describer)(nil)

// NewDescriber wires an HTTP client; the default carries a 15s timeout.
func NewDescriber(client *http.Client) *Describer {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Describer{client: client}
}

// Describe fetches pageURL and returns whatever meta title and description the
// page exposes. Both fields may be empty on pages without metadata.
func (d *Describer) Describe(ctx context.Context, pageURL string) (domain.PageMeta, error) {
	doc, err := d.fetchDocument(ctx, pageURL)
	if err != nil {
		return domain.PageMeta{}, err
	}

	meta := domain.PageMeta{
		Title:       extractTitle(doc),
		Description: extractDescription(doc),
	}
	return meta, nil
}

func (d *Describer) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", describeUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	return doc, nil
}

func extractDescription(doc *goquery.Document) string {
	selectors := []string{
		`meta[name="description"]`,
		`meta[property="og:description"]`,
		`meta[name="twitter:description"]`,
	}
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if content = strings.TrimSpace(content); content != "" {
				return content
			}
		}
	}
	return ""
}

func extractTitle(doc *goquery.Document) string {
	selectors := []string{
		`meta[property="og:title"]`,
		`meta[name="twitter:title"]`,
	}
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if content = strings.TrimSpace(content); content != "" {
				return content
			}
		}
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
