package records

import (
	"bytes"
	"strings"
	"testing"

	"NewsPipeline/internal/domain"
)

func rec(url, title string) domain.ArticleRecord {
	return domain.ArticleRecord{URL: url, Title: title}
}

func TestMergeExistingWins(t *testing.T) {
	t.Parallel()

	existing := []domain.ArticleRecord{rec("https://a.com/1", "original")}
	incoming := []domain.ArticleRecord{
		rec("https://a.com/1", "rewritten"),
		rec("https://b.com/2", "fresh"),
	}

	merged, added, dropped := Merge(existing, incoming)
	if added != 1 || dropped != 0 {
		t.Fatalf("expected added=1 dropped=0, got added=%d dropped=%d", added, dropped)
	}
	if len(merged) != 2 {
		t.Fatalf("expected 2 records, got %d", len(merged))
	}
	if merged[0].Title != "original" {
		t.Fatalf("existing record was overwritten: %+v", merged[0])
	}
	if merged[1].URL != "https://b.com/2" {
		t.Fatalf("unexpected appended record: %+v", merged[1])
	}
}

func TestMergeIdempotent(t *testing.T) {
	t.Parallel()

	incoming := []domain.ArticleRecord{rec("https://a.com/1", "x"), rec("https://b.com/2", "y")}

	merged, added, _ := Merge(nil, incoming)
	if added != 2 {
		t.Fatalf("first merge: expected added=2, got %d", added)
	}

	again, added, _ := Merge(merged, incoming)
	if added != 0 {
		t.Fatalf("second merge: expected added=0, got %d", added)
	}
	if len(again) != len(merged) {
		t.Fatalf("second merge changed cardinality: %d vs %d", len(again), len(merged))
	}
	for i := range merged {
		if again[i] != merged[i] {
			t.Fatalf("second merge changed record %d: %+v vs %+v", i, again[i], merged[i])
		}
	}
}

func TestMergeDropsRecordsWithoutURL(t *testing.T) {
	t.Parallel()

	incoming := []domain.ArticleRecord{
		{Title: "no url"},
		rec("https://a.com/1", "kept"),
		{Description: "also no url"},
	}

	merged, added, dropped := Merge(nil, incoming)
	if added != 1 || dropped != 2 {
		t.Fatalf("expected added=1 dropped=2, got added=%d dropped=%d", added, dropped)
	}
	if len(merged) != 1 || merged[0].URL != "https://a.com/1" {
		t.Fatalf("unexpected merged set: %+v", merged)
	}
}

func TestEncodeJSONLFieldOrder(t *testing.T) {
	t.Parallel()

	data, err := EncodeJSONL([]domain.ArticleRecord{{
		URL:         "https://a.com/1",
		Title:       "t",
		Description: "d",
		MediaURL:    "a.com",
		PublishDate: "2026-01-02",
		Topic:       "unrest",
	}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	want := `{"url":"https://a.com/1","title":"t","description":"d","media_url":"a.com","publish_date":"2026-01-02","my_topic":"unrest"}` + "\n"
	if string(data) != want {
		t.Fatalf("unexpected line:\n got %s want %s", data, want)
	}
}

func TestDecodeJSONLSkipsBadLines(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		`{"url":"https://a.com/1","title":"one"}`,
		``,
		`not json at all`,
		`{"url":"https://b.com/2","title":"two"}`,
	}, "\n")

	recs, skipped, err := DecodeJSONL(strings.NewReader(input))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if skipped != 1 {
		t.Fatalf("expected 1 skipped line, got %d", skipped)
	}
	if len(recs) != 2 || recs[1].Title != "two" {
		t.Fatalf("unexpected records: %+v", recs)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	original := []domain.ArticleRecord{
		{URL: "https://a.com/1", Title: "quote \"inside\"", Description: "line", MediaURL: "a.com", PublishDate: "2026-01-01", Topic: "unrest"},
		{URL: "https://b.com/2?x=1&y=2", Title: "ampersand", MediaURL: "b.com", PublishDate: "2026-01-02", Topic: "unrest"},
	}

	data, err := EncodeJSONL(original)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, skipped, err := DecodeJSONL(bytes.NewReader(data))
	if err != nil || skipped != 0 {
		t.Fatalf("decode: err=%v skipped=%d", err, skipped)
	}
	if len(decoded) != len(original) {
		t.Fatalf("expected %d records, got %d", len(original), len(decoded))
	}
	for i := range original {
		if decoded[i] != original[i] {
			t.Fatalf("record %d mismatch: %+v vs %+v", i, decoded[i], original[i])
		}
	}
}
