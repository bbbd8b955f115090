package fetcher

import (
	"context"
	"fmt"
	"log/slog"

	"NewsPipeline/internal/config"
	"NewsPipeline/internal/domain"
	"NewsPipeline/internal/ports"
)

// TopicSource implements RecordSource via registered fetch strategies. A day
// counts as fetched only when every configured source for the topic succeeds;
// a failing source fails the whole day so the planner retries it next run.
type TopicSource struct {
	registry *Registry
	topics   map[string]config.TopicConfig
	logger   *slog.Logger
}

var _ ports.RecordSource = (*TopicSource)(nil)

// NewTopicSource wires the fetcher registry with config-defined topics.
func NewTopicSource(reg *Registry, topics []config.TopicConfig, log *slog.Logger) *TopicSource {
	byName := make(map[string]config.TopicConfig, len(topics))
	for _, topic := range topics {
		byName[topic.Name] = topic
	}
	return &TopicSource{
		registry: reg,
		topics:   byName,
		logger:   log,
	}
}

// FetchDay executes every source configured for the topic and aggregates the
// results.
func (s *TopicSource) FetchDay(ctx context.Context, topic string, day domain.Date) ([]domain.ArticleRecord, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("fetcher registry is not configured")
	}

	cfg, ok := s.topics[topic]
	if !ok {
		return nil, fmt.Errorf("topic %s is not configured", topic)
	}

	var aggregated []domain.ArticleRecord
	for _, src := range cfg.Sources {
		strategy, err := s.registry.Resolve(src.Fetcher)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", src.Name, err)
		}

		req := Request{
			Topic:   topic,
			Day:     day,
			Query:   cfg.Query,
			Outlets: src.Outlets,
			Feeds:   src.Feeds,
			Options: src.Options,
		}

		results, err := strategy.FetchDay(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("fetch source %s: %w", src.Name, err)
		}

		for i := range results {
			if results[i].Topic == "" {
				results[i].Topic = topic
			}
		}
		s.debug("source produced records", "source", src.Name, "day", day.String(), "count", len(results))
		aggregated = append(aggregated, results...)
	}

	return aggregated, nil
}

func (s *TopicSource) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
