package scraper

import (
	"context"
	"net/url"
	"strings"

	"github.com/ksysoev/docindex/pkg/core"
)

// PyPIStrategy wraps WebStrategy with the pypi.org ecosystem URL normalizer
// (§4.4 "GitHub, NPM, PyPI").
type PyPIStrategy struct {
	web *WebStrategy
}

// NewPyPIStrategy builds a PyPIStrategy.
func NewPyPIStrategy() *PyPIStrategy {
	return &PyPIStrategy{web: NewWebStrategy()}
}

// CanHandle reports whether seedURL points at pypi.org.
func (p *PyPIStrategy) CanHandle(seedURL string) bool {
	u, err := url.Parse(seedURL)
	if err != nil {
		return false
	}

	return strings.EqualFold(u.Hostname(), "pypi.org")
}

// Scrape delegates to the wrapped WebStrategy with the seed URL normalized
// using the ecosystem-specific rules before the crawl begins.
func (p *PyPIStrategy) Scrape(ctx context.Context, seedURL string, opts core.CrawlOptions, progress ProgressFunc, cancelled Cancelled) error {
	return p.web.Scrape(ctx, ecosystemNormalize(seedURL), opts, progress, cancelled)
}
