package scraper

import (
	"context"
	"fmt"
	"strings"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/ksysoev/docindex/pkg/fetch"
	"github.com/ksysoev/docindex/pkg/middleware"
	"github.com/ksysoev/docindex/pkg/urlutil"
)

// WebStrategy crawls http(s):// sources, running the full HTML pipeline and
// filtering outbound links by scope and an optional caller-supplied
// predicate. It owns a single headless-browser instance for the crawl and
// guarantees teardown on every exit path (§4.4 "Web").
type WebStrategy struct {
	fetcher   fetch.Fetcher
	pipelines *middleware.Pipelines
}

// NewWebStrategy builds a WebStrategy with its own Pipelines/renderer.
func NewWebStrategy() *WebStrategy {
	return &WebStrategy{
		fetcher:   fetch.NewHTTPFetcher(),
		pipelines: middleware.NewPipelines(),
	}
}

// CanHandle reports whether seedURL uses the http or https scheme.
func (w *WebStrategy) CanHandle(seedURL string) bool {
	return strings.HasPrefix(seedURL, "http://") || strings.HasPrefix(seedURL, "https://")
}

// Scrape runs the shared BFS crawler with a web-specific processItem, then
// tears down the strategy's headless-browser instance on every exit path.
func (w *WebStrategy) Scrape(ctx context.Context, seedURL string, opts core.CrawlOptions, progress ProgressFunc, cancelled Cancelled) error {
	defer w.pipelines.Close()

	crawler := NewCrawler()

	process := func(ctx context.Context, item core.QueueItem) (ProcessResult, error) {
		return w.processItem(ctx, item, seedURL, opts)
	}

	return crawler.Run(ctx, seedURL, opts, process, progress, cancelled)
}

func (w *WebStrategy) processItem(ctx context.Context, item core.QueueItem, seedURL string, opts core.CrawlOptions) (ProcessResult, error) {
	rc, err := w.fetcher.Fetch(ctx, item.URL, core.FetchOptions{FollowRedirects: opts.FollowRedirects})
	if err != nil {
		return ProcessResult{}, fmt.Errorf("fetch %s: %w", item.URL, err)
	}

	pc := &core.ProcessingContext{
		Source:      item.URL,
		Content:     rc.Bytes,
		ContentType: rc.MimeType,
		Options:     opts,
	}

	if err := w.pipelines.Run(ctx, pc, true); err != nil {
		return ProcessResult{}, fmt.Errorf("process %s: %w", item.URL, err)
	}

	docKind := core.DocKindMarkdown
	if kind := core.DetectContentType(item.URL, pc.Content); kind == core.DocKindOpenAPI {
		docKind = core.DocKindOpenAPI
	}

	doc := &core.CrawledPage{
		URL:     item.URL,
		Content: string(pc.Content),
		Title:   pc.Metadata["title"],
		Depth:   item.Depth,
		DocKind: docKind,
	}

	links := w.filterLinks(pc.Links, seedURL, opts)

	return ProcessResult{Document: doc, Links: links}, nil
}

func (w *WebStrategy) filterLinks(links []string, seedURL string, opts core.CrawlOptions) []string {
	scope := opts.Scope
	if scope == "" {
		scope = core.ScopeSubpages
	}

	out := make([]string, 0, len(links))

	for _, l := range links {
		if !urlutil.HasScope(scope, seedURL, l) {
			continue
		}

		if opts.LinkPredicate != nil && !opts.LinkPredicate(l) {
			continue
		}

		out = append(out, l)
	}

	return out
}
