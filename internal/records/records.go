package records

import "NewsPipeline/internal/domain"

// Merge combines incoming records into the existing deduplicated set. The URL
// is the identity; on a collision the existing record wins, since stored data
// has already been validated. Incoming records without a URL are dropped and
// counted. Existing order is preserved and new records append in incoming
// order, so the merged output is deterministic.
func Merge(existing, incoming []domain.ArticleRecord) (merged []domain.ArticleRecord, added, dropped int) {
	merged = make([]domain.ArticleRecord, 0, len(existing)+len(incoming))
	seen := make(map[string]struct{}, len(existing)+len(incoming))

	for _, rec := range existing {
		if rec.URL == "" {
			continue
		}
		if _, ok := seen[rec.URL]; ok {
			continue
		}
		seen[rec.URL] = struct{}{}
		merged = append(merged, rec)
	}

	for _, rec := range incoming {
		if rec.URL == "" {
			dropped++
			continue
		}
		if _, ok := seen[rec.URL]; ok {
			continue
		}
		seen[rec.URL] = struct{}{}
		merged = append(merged, rec)
		added++
	}

	return merged, added, dropped
}
