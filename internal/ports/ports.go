package ports

import (
	"context"

	"NewsPipeline/internal/coverage"
	"NewsPipeline/internal/domain"
)

// RecordSource pulls article metadata for one topic and calendar day from
// upstream providers.
type RecordSource interface {
	FetchDay(ctx context.Context, topic string, day domain.Date) ([]domain.ArticleRecord, error)
}

// DatasetRepository persists per-topic datasets and coverage manifests.
type DatasetRepository interface {
	LoadManifest(topic string) (*coverage.Manifest, error)
	SaveManifest(topic string, m *coverage.Manifest) error
	LoadRaw(topic string) ([]domain.ArticleRecord, error)
	SaveRaw(topic string, recs []domain.ArticleRecord) error
	SaveClean(topic string, recs []domain.ArticleRecord) error
}

// Describer scrapes article pages for metadata to enrich sparse records.
type Describer interface {
	Describe(ctx context.Context, pageURL string) (domain.PageMeta, error)
}

// Publisher pushes serialized dataset files to the remote snippet store.
type Publisher interface {
	Publish(ctx context.Context, gistID string, files map[string]string) error
}
