package rss

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"NewsPipeline/internal/domain"
	"NewsPipeline/internal/fetcher"
)

const feedTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Local News</title>
<link>https://www.example.com</link>
<item>
<title>Raid downtown</title>
<link>https://www.example.com/raid?utm_source=rss</link>
<description>Agents detained several people.</description>
<pubDate>%s</pubDate>
</item>
<item>
<title>Old story</title>
<link>https://www.example.com/old</link>
<description>From another day.</description>
<pubDate>%s</pubDate>
</item>
<item>
<title>Undated story</title>
<link>https://www.example.com/undated</link>
<description>No pub date at all.</description>
</item>
</channel>
</rss>`

func TestFetchDayFiltersByDate(t *testing.T) {
	t.Parallel()

	day := domain.NewDate(2026, time.January, 3)
	match := time.Date(2026, time.January, 3, 22, 15, 0, 0, time.UTC)
	other := time.Date(2026, time.January, 2, 8, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, feedTemplate, match.Format(time.RFC1123Z), other.Format(time.RFC1123Z))
	}))
	defer server.Close()

	source := NewSource(server.Client())
	records, err := source.FetchDay(context.Background(), fetcher.Request{
		Topic: "minneapolis-ice",
		Day:   day,
		Feeds: []string{server.URL},
	})
	if err != nil {
		t.Fatalf("FetchDay: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	got := records[0]
	if got.URL != "https://www.example.com/raid" {
		t.Fatalf("tracking params not stripped: %q", got.URL)
	}
	if got.MediaURL != "example.com" {
		t.Fatalf("unexpected media url %q", got.MediaURL)
	}
	if got.PublishDate != "2026-01-03" {
		t.Fatalf("unexpected publish date %q", got.PublishDate)
	}
	if got.Topic != "minneapolis-ice" {
		t.Fatalf("unexpected topic %q", got.Topic)
	}
}

func TestFetchDayFeedError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	source := NewSource(server.Client())
	_, err := source.FetchDay(context.Background(), fetcher.Request{
		Day:   domain.NewDate(2026, time.January, 3),
		Feeds: []string{server.URL},
	})
	if err == nil {
		t.Fatal("expected error for failing feed")
	}
}
