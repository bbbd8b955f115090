package cleaner

import (
	"bytes"
	"testing"

	"NewsPipeline/internal/domain"
	"NewsPipeline/internal/records"
)

func TestFilterOutletAndKeyword(t *testing.T) {
	t.Parallel()

	input := []domain.ArticleRecord{
		{URL: "https://a.com/1", Title: "ICE raid", MediaURL: "a.com"},
		{URL: "https://b.com/2", Title: "weather", MediaURL: "b.com"},
	}

	out := Filter(input, []string{"a.com"}, []string{"ice"})
	if len(out) != 1 || out[0].URL != "https://a.com/1" {
		t.Fatalf("unexpected filter result: %+v", out)
	}
}

func TestFilterKeywordMatchesDescription(t *testing.T) {
	t.Parallel()

	input := []domain.ArticleRecord{
		{URL: "https://a.com/1", Title: "daily briefing", Description: "Minneapolis protest coverage", MediaURL: "a.com"},
		{URL: "https://a.com/2", Title: "sports recap", Description: "game results", MediaURL: "a.com"},
	}

	out := Filter(input, []string{"a.com"}, []string{"minneapolis"})
	if len(out) != 1 || out[0].URL != "https://a.com/1" {
		t.Fatalf("unexpected filter result: %+v", out)
	}
}

func TestFilterEmptyKeywordsKeepsAllOutletMatches(t *testing.T) {
	t.Parallel()

	input := []domain.ArticleRecord{
		{URL: "https://a.com/1", Title: "anything", MediaURL: "a.com"},
		{URL: "https://b.com/2", Title: "anything", MediaURL: "b.com"},
	}

	out := Filter(input, []string{"a.com"}, nil)
	if len(out) != 1 || out[0].MediaURL != "a.com" {
		t.Fatalf("unexpected filter result: %+v", out)
	}
}

func TestFilterEmptyOutletsDisablesOutletRestriction(t *testing.T) {
	t.Parallel()

	input := []domain.ArticleRecord{
		{URL: "https://a.com/1", Title: "ice storm", MediaURL: "a.com"},
		{URL: "https://b.com/2", Title: "ice rink", MediaURL: "b.com"},
	}

	out := Filter(input, nil, []string{"ice"})
	if len(out) != 2 {
		t.Fatalf("expected both records, got %+v", out)
	}
}

func TestFilterOrderingAndDeterminism(t *testing.T) {
	t.Parallel()

	input := []domain.ArticleRecord{
		{URL: "https://a.com/z", PublishDate: "2026-01-02", MediaURL: "a.com"},
		{URL: "https://a.com/a", PublishDate: "2026-01-02", MediaURL: "a.com"},
		{URL: "https://a.com/m", PublishDate: "2026-01-01", MediaURL: "a.com"},
	}

	first := Filter(input, []string{"a.com"}, nil)
	if first[0].URL != "https://a.com/m" {
		t.Fatalf("expected oldest record first, got %+v", first[0])
	}
	if first[1].URL != "https://a.com/a" || first[2].URL != "https://a.com/z" {
		t.Fatalf("same-day tie not broken by URL: %+v", first)
	}

	second := Filter(input, []string{"a.com"}, nil)
	firstBytes, err := records.EncodeJSONL(first)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	secondBytes, err := records.EncodeJSONL(second)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(firstBytes, secondBytes) {
		t.Fatal("repeated filter runs produced different bytes")
	}
}
