// Package fetch provides the polymorphic byte fetchers for http(s):// and
// file:// sources (§4.2).
package fetch

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ksysoev/docindex/pkg/core"
)

// Fetcher is the capability set every source-scheme fetcher implements (§4.2).
type Fetcher interface {
	CanFetch(source string) bool
	Fetch(ctx context.Context, source string, opts core.FetchOptions) (core.RawContent, error)
}

// Registry picks the first fetcher whose CanFetch reports true, mirroring the
// scraper strategy registry's first-match-wins design (§9).
type Registry struct {
	fetchers []Fetcher
}

// NewRegistry builds a registry over the given fetchers, tried in order.
func NewRegistry(fetchers ...Fetcher) *Registry {
	return &Registry{fetchers: fetchers}
}

// Fetch resolves source to a fetcher and delegates. Returns core.ErrNoStrategy
// when no registered fetcher accepts the source.
func (r *Registry) Fetch(ctx context.Context, source string, opts core.FetchOptions) (core.RawContent, error) {
	for _, f := range r.fetchers {
		if f.CanFetch(source) {
			return f.Fetch(ctx, source, opts)
		}
	}

	return core.RawContent{}, fmt.Errorf("%w: %s", core.ErrNoStrategy, source)
}

// schemeOf returns the URL scheme, or "" if source does not parse.
func schemeOf(source string) string {
	u, err := url.Parse(source)
	if err != nil {
		return ""
	}

	return u.Scheme
}
