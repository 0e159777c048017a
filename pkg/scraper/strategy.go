package scraper

import (
	"context"
	"fmt"

	"github.com/ksysoev/docindex/pkg/core"
)

// Strategy is the capability set every per-source crawl strategy implements
// (§4.4). A registry picks the first strategy whose CanHandle reports true.
type Strategy interface {
	CanHandle(seedURL string) bool
	Scrape(ctx context.Context, seedURL string, opts core.CrawlOptions, progress ProgressFunc, cancelled Cancelled) error
}

// Registry resolves a seed URL to its Strategy, first-match-wins (§4.4, §9
// "Strategy registry").
type Registry struct {
	strategies []Strategy
}

// NewRegistry builds a Registry trying strategies in the given order.
func NewRegistry(strategies ...Strategy) *Registry {
	return &Registry{strategies: strategies}
}

// Resolve returns the first strategy that accepts seedURL, or
// core.ErrNoStrategy when none match.
func (r *Registry) Resolve(seedURL string) (Strategy, error) {
	for _, s := range r.strategies {
		if s.CanHandle(seedURL) {
			return s, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", core.ErrNoStrategy, seedURL)
}
