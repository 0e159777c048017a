package tools

import (
	"context"
	"fmt"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/ksysoev/docindex/pkg/semverx"
)

// ScrapeRequest is the input to the Scrape tool.
type ScrapeRequest struct {
	Library string
	Version string
	SeedURL string
	Options core.CrawlOptions
	// Wait, when true, blocks until the job reaches a terminal state and
	// reports the page count instead of returning the job id immediately.
	Wait bool
}

// ScrapeResponse is the output of the Scrape tool.
type ScrapeResponse struct {
	JobID        string
	Waited       bool
	PagesScraped int
}

// Scrape validates and coerces the requested version, clears any existing
// documents for that (library, version), and enqueues a crawl job.
func (t *Tools) Scrape(ctx context.Context, req ScrapeRequest) (ScrapeResponse, error) {
	version, err := semverx.CoerceTriple(req.Version)
	if err != nil {
		return ScrapeResponse{}, fmt.Errorf("%w: %q is not a valid version", core.ErrVersionNotFound, req.Version)
	}

	lib := core.Library{Name: req.Library, Version: version}.Fold()

	if err := t.store.RemoveLibraryVersion(ctx, lib); err != nil {
		return ScrapeResponse{}, fmt.Errorf("clear existing docs: %w", err)
	}

	jobID := t.jobs.EnqueueJob(lib, req.SeedURL, req.Options)

	if !req.Wait {
		return ScrapeResponse{JobID: jobID}, nil
	}

	if err := t.jobs.WaitForJobCompletion(ctx, jobID); err != nil {
		return ScrapeResponse{}, fmt.Errorf("scrape %s@%s: %w", lib.Name, lib.Version, err)
	}

	job, ok := t.jobs.GetJob(jobID)
	if !ok {
		return ScrapeResponse{}, fmt.Errorf("job %s vanished after completion", jobID)
	}

	return ScrapeResponse{JobID: jobID, Waited: true, PagesScraped: job.Progress.PagesScraped}, nil
}
