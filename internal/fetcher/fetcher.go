package fetcher

import (
	"context"
	"fmt"

	"NewsPipeline/internal/domain"
)

// Request carries all parameters required to fetch one topic-day from a
// single source.
type Request struct {
	Topic   string
	Day     domain.Date
	Query   string
	Outlets map[string]int
	Feeds   []string
	Options map[string]string
}

// Fetcher captures a single source strategy (MediaCloud search, RSS, etc.).
type Fetcher interface {
	Name() string
	FetchDay(ctx context.Context, req Request) ([]domain.ArticleRecord, error)
}

// Registry keeps a mapping from fetcher names to their implementations.
type Registry struct {
	fetchers map[string]Fetcher
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{fetchers: map[string]Fetcher{}}
}

// Register adds or replaces a fetcher implementation.
func (r *Registry) Register(f Fetcher) {
	if r.fetchers == nil {
		r.fetchers = map[string]Fetcher{}
	}
	r.fetchers[f.Name()] = f
}

// Resolve returns a fetcher by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Fetcher, error) {
	if f, ok := r.fetchers[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("fetcher %s is not registered", name)
}
