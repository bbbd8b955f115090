package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"NewsPipeline/internal/cleaner"
	"NewsPipeline/internal/config"
	"NewsPipeline/internal/coverage"
	"NewsPipeline/internal/domain"
	"NewsPipeline/internal/ports"
	"NewsPipeline/internal/records"
	"NewsPipeline/internal/report"
)

// PipelineDeps wires all driven adapters into the collection pipeline.
type PipelineDeps struct {
	Source          ports.RecordSource
	Repository      ports.DatasetRepository
	Describer       ports.Describer
	Publisher       ports.Publisher
	MaxBackfillDays int
	Logger          *slog.Logger
}

// Pipeline implements the per-topic collection workflow: plan missing dates,
// fetch them, merge into the raw store, update the coverage manifest, produce
// the cleaned dataset, and publish.
type Pipeline struct {
	source          ports.RecordSource
	repository      ports.DatasetRepository
	describer       ports.Describer
	publisher       ports.Publisher
	maxBackfillDays int
	logger          *slog.Logger
	clock           func() time.Time
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{
		source:          deps.Source,
		repository:      deps.Repository,
		describer:       deps.Describer,
		publisher:       deps.Publisher,
		maxBackfillDays: deps.MaxBackfillDays,
		logger:          logger,
		clock:           time.Now,
	}
}

// ProcessTopic runs one collection pass for the topic as of today. Individual
// dates that fail to fetch are skipped and stay open as gaps; failures writing
// the raw store or the manifest abort the run.
func (p *Pipeline) ProcessTopic(ctx context.Context, topic config.TopicConfig, today domain.Date) error {
	if p.source == nil || p.repository == nil {
		return fmt.Errorf("pipeline misconfigured: source and repository are required")
	}

	log := p.logger.With("topic", topic.Name, "run_id", uuid.NewString())

	manifest, err := p.repository.LoadManifest(topic.Name)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}
	if manifest == nil {
		manifest = coverage.NewManifest(topic.Name, topic.StartDate)
	}

	existing, err := p.repository.LoadRaw(topic.Name)
	if err != nil {
		return fmt.Errorf("load raw records: %w", err)
	}

	days := coverage.Plan(manifest, today)
	if p.maxBackfillDays > 0 && len(days) > p.maxBackfillDays {
		days = days[len(days)-p.maxBackfillDays:]
	}
	log.Info("collection plan ready", "days", len(days), "existing_records", len(existing))

	knownURLs := make(map[string]struct{}, len(existing))
	for _, rec := range existing {
		knownURLs[rec.URL] = struct{}{}
	}

	for _, day := range days {
		fetched, err := p.source.FetchDay(ctx, topic.Name, day)
		if err != nil {
			log.Warn("fetch failed, date stays open", "day", day.String(), "error", err)
			continue
		}

		p.describeMissing(ctx, log, fetched, knownURLs)

		merged, added, dropped := records.Merge(existing, fetched)
		existing = merged
		for _, rec := range fetched {
			if rec.URL != "" {
				knownURLs[rec.URL] = struct{}{}
			}
		}
		if dropped > 0 {
			log.Warn("dropped malformed records", "day", day.String(), "count", dropped)
		}

		if err := manifest.RecordRun(day, added, p.clock()); err != nil {
			return fmt.Errorf("record run for %s: %w", day, err)
		}
		log.Info("day collected", "day", day.String(), "fetched", len(fetched), "added", added)
	}

	manifest.SetRecordCount(len(existing))

	if err := p.repository.SaveRaw(topic.Name, existing); err != nil {
		return fmt.Errorf("save raw records: %w", err)
	}
	if err := p.repository.SaveManifest(topic.Name, manifest); err != nil {
		return fmt.Errorf("save manifest: %w", err)
	}

	clean := cleaner.Filter(existing, topic.OutletDomains(), topic.FilterKeywords)
	if err := p.repository.SaveClean(topic.Name, clean); err != nil {
		return fmt.Errorf("save clean records: %w", err)
	}

	summary := report.Summarize(clean)
	first, last := summary.DateSpan()
	log.Info("datasets written",
		"raw", len(existing),
		"clean", summary.Total,
		"gaps", len(manifest.Gaps),
		"span", first+".."+last,
		"top_outlets", strings.Join(summary.TopOutlets(3), " "),
	)

	if p.publisher != nil && topic.GistID != "" {
		if err := p.publish(ctx, topic.GistID, existing, clean, manifest); err != nil {
			log.Warn("publish failed, datasets remain local", "error", err)
		} else {
			log.Info("datasets published", "gist_id", topic.GistID)
		}
	}

	return nil
}

// describeMissing scrapes article pages for records that arrived without a
// description. Scrape failures leave the record as-is.
func (p *Pipeline) describeMissing(ctx context.Context, log *slog.Logger, fetched []domain.ArticleRecord, known map[string]struct{}) {
	if p.describer == nil {
		return
	}
	for i := range fetched {
		rec := &fetched[i]
		if rec.URL == "" || rec.Description != "" {
			continue
		}
		if _, ok := known[rec.URL]; ok {
			continue
		}
		meta, err := p.describer.Describe(ctx, rec.URL)
		if err != nil {
			log.Warn("describe failed", "url", rec.URL, "error", err)
			continue
		}
		rec.Description = meta.Description
		if rec.Title == "" {
			rec.Title = meta.Title
		}
	}
}

func (p *Pipeline) publish(ctx context.Context, gistID string, raw, clean []domain.ArticleRecord, manifest *coverage.Manifest) error {
	rawData, err := records.EncodeJSONL(raw)
	if err != nil {
		return fmt.Errorf("encode raw dataset: %w", err)
	}
	cleanData, err := records.EncodeJSONL(clean)
	if err != nil {
		return fmt.Errorf("encode clean dataset: %w", err)
	}
	manifestData, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	files := map[string]string{
		"raw.jsonl":     string(rawData),
		"clean.jsonl":   string(cleanData),
		"manifest.json": string(manifestData) + "\n",
	}
	return p.publisher.Publish(ctx, gistID, files)
}
