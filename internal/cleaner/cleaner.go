package cleaner

import (
	"sort"
	"strings"

	"NewsPipeline/internal/domain"
)

// Filter produces the published subset: a record survives when its outlet is
// allowed and, if keywords are configured, its title or description contains
// at least one keyword (case-insensitive substring match). An empty outlet
// list disables the outlet restriction. Output is sorted by publish date
// ascending with the URL as tie-break, so repeated runs over the same input
// yield byte-identical artifacts.
func Filter(records []domain.ArticleRecord, outlets []string, keywords []string) []domain.ArticleRecord {
	allowed := make(map[string]struct{}, len(outlets))
	for _, outlet := range outlets {
		outlet = strings.ToLower(strings.TrimSpace(outlet))
		if outlet != "" {
			allowed[outlet] = struct{}{}
		}
	}

	lowered := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword != "" {
			lowered = append(lowered, keyword)
		}
	}

	out := make([]domain.ArticleRecord, 0, len(records))
	for _, rec := range records {
		if len(allowed) > 0 {
			if _, ok := allowed[strings.ToLower(strings.TrimSpace(rec.MediaURL))]; !ok {
				continue
			}
		}
		if len(lowered) > 0 && !matchesAny(rec, lowered) {
			continue
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].PublishDate != out[j].PublishDate {
			return out[i].PublishDate < out[j].PublishDate
		}
		return out[i].URL < out[j].URL
	})
	return out
}

func matchesAny(rec domain.ArticleRecord, keywords []string) bool {
	text := strings.ToLower(rec.Title + " " + rec.Description)
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
