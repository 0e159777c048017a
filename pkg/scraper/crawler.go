// Package scraper implements the per-source crawl strategies and the shared
// BFS crawl loop that drives them (§4.4).
package scraper

import (
	"context"
	"fmt"
	"sync"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/ksysoev/docindex/pkg/urlutil"
	"golang.org/x/sync/errgroup"
)

// ProcessResult is what a strategy's processItem returns for one queue item:
// an optional document (nil when the item yielded no page, e.g. a directory
// listing) and the raw links discovered on that page.
type ProcessResult struct {
	Document *core.CrawledPage
	Links    []string
}

// ProcessItemFunc is the strategy-specific per-item worker invoked by the
// shared BFS loop (§4.4 step 3).
type ProcessItemFunc func(ctx context.Context, item core.QueueItem) (ProcessResult, error)

// ProgressFunc streams progress after each processed item (§4.4 step 4).
type ProgressFunc func(core.JobProgress, *core.CrawledPage)

// Cancelled reports whether the owning job has been asked to cancel (§5).
type Cancelled func() bool

// Crawler drives the breadth-first traversal shared by every strategy:
// normalized-URL dedup, depth-bounded BFS ordering, and batch-then-consolidate
// link admission (§4.4 "Base BFS crawler", §9 "Visited-set consistency").
type Crawler struct {
	mu      sync.Mutex
	visited map[string]struct{}
}

// NewCrawler builds an empty Crawler for one job's crawl.
func NewCrawler() *Crawler {
	return &Crawler{visited: make(map[string]struct{})}
}

// Run executes the BFS loop from seed until the queue is drained, maxPages is
// reached, or cancellation fires.
func (c *Crawler) Run(ctx context.Context, seed string, opts core.CrawlOptions, process ProcessItemFunc, progress ProgressFunc, cancelled Cancelled) error {
	normSeed := urlutil.NormalizeURL(seed, urlutil.DefaultNormalizeOptions)
	queue := []core.QueueItem{{URL: normSeed, Depth: 0}}
	c.markVisited(normSeed)

	pagesScraped := 0
	maxConcurrency := opts.MaxConcurrency
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}

	for len(queue) > 0 {
		if cancelled() {
			return fmt.Errorf("%w: crawl aborted", core.ErrCancelled)
		}

		remaining := opts.MaxPages - pagesScraped
		if opts.MaxPages > 0 && remaining <= 0 {
			break
		}

		batchSize := min(maxConcurrency, len(queue))
		if opts.MaxPages > 0 {
			batchSize = min(batchSize, remaining)
		}

		batch := queue[:batchSize]
		queue = queue[batchSize:]

		results := make([]ProcessResult, len(batch))
		errs := make([]error, len(batch))

		g, gctx := errgroup.WithContext(ctx)

		for i, item := range batch {
			i, item := i, item

			if item.Depth > opts.MaxDepth {
				continue
			}

			g.Go(func() error {
				if cancelled() {
					errs[i] = fmt.Errorf("%w: crawl aborted", core.ErrCancelled)
					return nil
				}

				res, err := process(gctx, item)
				if err != nil {
					if !opts.IgnoreErrors {
						return err
					}

					errs[i] = err

					return nil
				}

				results[i] = res

				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}

		var discovered []core.QueueItem

		for i, item := range batch {
			if errs[i] != nil {
				continue
			}

			if item.Depth > opts.MaxDepth {
				continue
			}

			res := results[i]

			if res.Document != nil {
				pagesScraped++
				progress(core.JobProgress{
					PagesScraped: pagesScraped,
					MaxPages:     opts.MaxPages,
					CurrentURL:   item.URL,
					Depth:        item.Depth,
					MaxDepth:     opts.MaxDepth,
				}, res.Document)
			}

			for _, link := range res.Links {
				discovered = append(discovered, core.QueueItem{URL: link, Depth: item.Depth + 1})
			}
		}

		// Consolidate newly discovered URLs through normalization + dedup
		// after the whole batch finishes, avoiding races on the visited set.
		for _, d := range discovered {
			norm := urlutil.NormalizeURL(d.URL, urlutil.DefaultNormalizeOptions)
			if c.markVisited(norm) {
				queue = append(queue, core.QueueItem{URL: norm, Depth: d.Depth})
			}
		}
	}

	return nil
}

// markVisited adds url to the visited set and reports whether it was newly
// added (false means it was already present and should not be re-enqueued).
func (c *Crawler) markVisited(url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.visited[url]; ok {
		return false
	}

	c.visited[url] = struct{}{}

	return true
}
