package jobs

import (
	"context"
	"errors"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/ksysoev/docindex/pkg/splitter"
)

// runWorker resolves the job's strategy and drives its crawl, streaming each
// produced page through the splitter and into the store, then transitions
// the job to its terminal status (§4.8 "Scheduling").
func (m *Manager) runWorker(e *entry) {
	ctx := context.Background()
	job := e.job

	strategy, err := m.registry.Resolve(job.SeedURL)
	if err != nil {
		m.completeJob(e, core.JobFailed, err)
		return
	}

	progress := func(p core.JobProgress, page *core.CrawledPage) {
		if page != nil {
			if err := m.storePage(ctx, job.Library, page); err != nil {
				m.fireError(job, err, page)
			}
		}

		m.mu.Lock()
		job.Progress = p
		m.mu.Unlock()

		if m.callbacks.OnJobProgress != nil {
			m.callbacks.OnJobProgress(job, p)
		}
	}

	err = strategy.Scrape(ctx, job.SeedURL, job.Options, progress, e.cancel.Cancelled)

	switch {
	case err == nil:
		m.completeJob(e, core.JobCompleted, nil)
	case errors.Is(err, core.ErrCancelled):
		m.completeJob(e, core.JobCancelled, err)
	default:
		m.completeJob(e, core.JobFailed, err)
	}
}

// storePage splits one crawled page into chunks and writes them as a unit,
// routing OpenAPI specs to the dedicated path/operation splitter instead of
// the Markdown section splitter (§4.4 step 5, core.DetectContentType).
func (m *Manager) storePage(ctx context.Context, lib core.Library, page *core.CrawledPage) error {
	var (
		chunks []core.Chunk
		err    error
	)

	if page.DocKind == core.DocKindOpenAPI {
		chunks, err = splitter.SplitOpenAPI([]byte(page.Content), m.splitOpts)
	} else {
		chunks, err = splitter.Split(page.Content, m.splitOpts)
	}

	if err != nil {
		return err
	}

	return m.store.PutPage(ctx, lib, page.URL, chunks)
}

func (m *Manager) fireError(job *core.Job, err error, page *core.CrawledPage) {
	if m.callbacks.OnJobError != nil {
		m.callbacks.OnJobError(job, err, page)
	}
}

// completeJob transitions a job to a terminal status, records its error, and
// resolves/rejects the completion future (§4.8).
func (m *Manager) completeJob(e *entry, status core.JobStatus, err error) {
	m.mu.Lock()
	e.job.Status = status
	e.job.Err = err
	m.finish(e, err)
	m.mu.Unlock()

	m.fireStatusChange(e.job)
}
