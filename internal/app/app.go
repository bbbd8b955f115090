package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"NewsPipeline/internal/config"
	"NewsPipeline/internal/domain"
	"NewsPipeline/internal/fetcher"
	"NewsPipeline/internal/infrastructure/gist"
	"NewsPipeline/internal/infrastructure/mediacloud"
	"NewsPipeline/internal/infrastructure/rss"
	"NewsPipeline/internal/infrastructure/scraper"
	"NewsPipeline/internal/infrastructure/storage"
	"NewsPipeline/internal/logging"
	"NewsPipeline/internal/ports"
	"NewsPipeline/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := fetcher.NewRegistry()
	registry.Register(mediacloud.NewClient(cfg.MediaCloud, nil))
	registry.Register(rss.NewSource(nil))

	source := fetcher.NewTopicSource(registry, cfg.Topics, baseLogger.With("component", "source"))
	repository := storage.NewRepository(cfg.Data.Dir)

	var describer ports.Describer
	if !cfg.Pipeline.SkipDescribe {
		describer = scraper.NewDescriber(nil)
	}

	var publisher ports.Publisher
	if cfg.Gist.Token != "" {
		publisher = gist.NewPublisher(cfg.Gist, nil)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:          source,
		Repository:      repository,
		Describer:       describer,
		Publisher:       publisher,
		MaxBackfillDays: cfg.Pipeline.MaxBackfillDays,
		Logger:          baseLogger.With("component", "pipeline"),
	})
	return &Application{cfg: cfg, logger: baseLogger, pipeline: pipeline}
}

// Run executes one collection pass over every configured topic. A topic
// failure does not stop the remaining topics; all failures are reported.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}

	today := domain.DateOf(time.Now())
	var errs []error
	for _, topic := range a.cfg.Topics {
		if err := a.pipeline.ProcessTopic(ctx, topic, today); err != nil {
			a.logger.Error("topic run failed", "topic", topic.Name, "error", err)
			errs = append(errs, fmt.Errorf("topic %s: %w", topic.Name, err))
		}
	}
	return errors.Join(errs...)
}
