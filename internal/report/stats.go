package report

import (
	"fmt"
	"sort"

	"NewsPipeline/internal/domain"
)

// Summary holds per-outlet and per-date counts for a dataset.
type Summary struct {
	Total    int
	ByOutlet map[string]int
	ByDate   map[string]int
}

// Summarize counts records per outlet and per publish date.
func Summarize(recs []domain.ArticleRecord) Summary {
	s := Summary{
		Total:    len(recs),
		ByOutlet: map[string]int{},
		ByDate:   map[string]int{},
	}
	for _, rec := range recs {
		outlet := rec.MediaURL
		if outlet == "" {
			outlet = "unknown"
		}
		day := rec.PublishDate
		if day == "" {
			day = "unknown"
		}
		s.ByOutlet[outlet]++
		s.ByDate[day]++
	}
	return s
}

// TopOutlets returns "outlet=count" pairs sorted by count descending, ties by
// outlet name.
func (s Summary) TopOutlets(limit int) []string {
	type pair struct {
		outlet string
		count  int
	}
	pairs := make([]pair, 0, len(s.ByOutlet))
	for outlet, count := range s.ByOutlet {
		pairs = append(pairs, pair{outlet: outlet, count: count})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].outlet < pairs[j].outlet
	})
	if limit > 0 && len(pairs) > limit {
		pairs = pairs[:limit]
	}
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = fmt.Sprintf("%s=%d", p.outlet, p.count)
	}
	return out
}

// DateSpan returns the earliest and latest publish dates in the dataset.
func (s Summary) DateSpan() (first, last string) {
	for day := range s.ByDate {
		if day == "unknown" {
			continue
		}
		if first == "" || day < first {
			first = day
		}
		if day > last {
			last = day
		}
	}
	return first, last
}
