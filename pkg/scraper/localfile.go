package scraper

import (
	"context"
	"fmt"
	"strings"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/ksysoev/docindex/pkg/fetch"
	"github.com/ksysoev/docindex/pkg/middleware"
)

// LocalFileStrategy crawls file:// sources. Directory paths are expanded into
// their entries as links (recursed through BFS); files run the HTML or
// Markdown pipeline depending on MIME. File content never yields links
// (§4.4 "Local-file").
type LocalFileStrategy struct {
	fetcher   *fetch.FileFetcher
	pipelines *middleware.Pipelines
}

// NewLocalFileStrategy builds a LocalFileStrategy.
func NewLocalFileStrategy() *LocalFileStrategy {
	return &LocalFileStrategy{
		fetcher:   fetch.NewFileFetcher(),
		pipelines: middleware.NewPipelines(),
	}
}

// CanHandle reports whether seedURL uses the file scheme.
func (l *LocalFileStrategy) CanHandle(seedURL string) bool {
	return strings.HasPrefix(seedURL, "file://")
}

// Scrape runs the shared BFS crawler over the local filesystem tree rooted
// at seedURL.
func (l *LocalFileStrategy) Scrape(ctx context.Context, seedURL string, opts core.CrawlOptions, progress ProgressFunc, cancelled Cancelled) error {
	defer l.pipelines.Close()

	crawler := NewCrawler()

	process := func(ctx context.Context, item core.QueueItem) (ProcessResult, error) {
		return l.processItem(ctx, item, opts)
	}

	return crawler.Run(ctx, seedURL, opts, process, progress, cancelled)
}

func (l *LocalFileStrategy) processItem(ctx context.Context, item core.QueueItem, opts core.CrawlOptions) (ProcessResult, error) {
	rc, err := l.fetcher.Fetch(ctx, item.URL, core.FetchOptions{})
	if err != nil {
		return ProcessResult{}, fmt.Errorf("fetch %s: %w", item.URL, err)
	}

	if fetch.IsDirectoryListing(rc) {
		return ProcessResult{Links: fetch.DirectoryEntries(rc)}, nil
	}

	if rc.MimeType == "application/yaml" || rc.MimeType == "application/json" {
		kind := core.DetectContentType(item.URL, rc.Bytes)
		if kind != core.DocKindOpenAPI {
			// Arbitrary, non-spec YAML/JSON encountered during a directory
			// walk; not documentation, skip without failing the crawl.
			return ProcessResult{}, nil
		}

		return ProcessResult{Document: &core.CrawledPage{
			URL:     item.URL,
			Content: string(rc.Bytes),
			Depth:   item.Depth,
			DocKind: core.DocKindOpenAPI,
		}}, nil
	}

	if rc.MimeType != "text/html" && rc.MimeType != "text/markdown" && rc.MimeType != "text/plain" {
		// Not a page format the pipeline understands; skip without failing
		// the crawl (e.g. images, binaries encountered during directory walk).
		return ProcessResult{}, nil
	}

	pc := &core.ProcessingContext{
		Source:      item.URL,
		Content:     rc.Bytes,
		ContentType: rc.MimeType,
		Options:     opts,
	}

	if err := l.pipelines.Run(ctx, pc, false); err != nil {
		return ProcessResult{}, fmt.Errorf("process %s: %w", item.URL, err)
	}

	doc := &core.CrawledPage{
		URL:     item.URL,
		Content: string(pc.Content),
		Title:   pc.Metadata["title"],
		Depth:   item.Depth,
		DocKind: core.DocKindMarkdown,
	}

	return ProcessResult{Document: doc}, nil
}
