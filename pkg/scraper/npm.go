package scraper

import (
	"context"
	"net/url"
	"strings"

	"github.com/ksysoev/docindex/pkg/core"
)

// NPMStrategy wraps WebStrategy with the npmjs.com ecosystem URL normalizer
// (§4.4 "GitHub, NPM, PyPI").
type NPMStrategy struct {
	web *WebStrategy
}

// NewNPMStrategy builds an NPMStrategy.
func NewNPMStrategy() *NPMStrategy {
	return &NPMStrategy{web: NewWebStrategy()}
}

// CanHandle reports whether seedURL points at npmjs.com.
func (n *NPMStrategy) CanHandle(seedURL string) bool {
	u, err := url.Parse(seedURL)
	if err != nil {
		return false
	}

	return strings.HasSuffix(strings.ToLower(u.Hostname()), "npmjs.com")
}

// Scrape delegates to the wrapped WebStrategy with the seed URL normalized
// using the ecosystem-specific rules before the crawl begins.
func (n *NPMStrategy) Scrape(ctx context.Context, seedURL string, opts core.CrawlOptions, progress ProgressFunc, cancelled Cancelled) error {
	return n.web.Scrape(ctx, ecosystemNormalize(seedURL), opts, progress, cancelled)
}
