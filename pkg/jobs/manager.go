// Package jobs implements the job manager described in §4.8: a FIFO queue,
// a bounded worker pool, and the QUEUED -> RUNNING -> terminal status
// machine that drives one scrape per job via a ScraperService shim.
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ksysoev/docindex/pkg/core"
	"github.com/ksysoev/docindex/pkg/scraper"
	"github.com/ksysoev/docindex/pkg/splitter"
	"github.com/sourcegraph/conc/pool"
)

// DefaultConcurrency is the default number of jobs the manager runs at once (§5).
const DefaultConcurrency = 3

// ScraperService resolves a seed URL to the strategy that can crawl it,
// the narrow shim the worker depends on instead of the full registry (§4.8
// "ScraperService shim").
type ScraperService interface {
	Resolve(seedURL string) (scraper.Strategy, error)
}

// DocumentStore is the write capability the worker needs to stream chunked
// pages into the hybrid store.
type DocumentStore interface {
	PutPage(ctx context.Context, lib core.Library, url string, chunks []core.Chunk) error
}

// StatusChangeFunc fires whenever a job's Status field changes.
type StatusChangeFunc func(*core.Job)

// ProgressFunc fires after each page is processed.
type ProgressFunc func(*core.Job, core.JobProgress)

// ErrorFunc fires on a non-fatal per-page processing error; doc is nil when
// the error occurred before a page was produced.
type ErrorFunc func(*core.Job, error, *core.CrawledPage)

// Callbacks bundles the manager's optional observers (§4.8 "Callbacks").
// A nil field is simply not invoked.
type Callbacks struct {
	OnJobStatusChange StatusChangeFunc
	OnJobProgress     ProgressFunc
	OnJobError        ErrorFunc
}

type entry struct {
	job        *core.Job
	cancel     *cancelHandle
	done       chan struct{}
	waitErr    error
	waitErrSet bool
}

// Manager schedules and runs scrape jobs (§4.8). It is safe for concurrent use.
type Manager struct {
	mu      sync.Mutex
	started bool

	concurrency int
	active      int
	queue       []string
	jobs        map[string]*entry

	pool *pool.Pool

	registry     ScraperService
	store        DocumentStore
	splitOpts    splitter.Options
	callbacks    Callbacks
}

// New builds a Manager with the given concurrency (DefaultConcurrency if <= 0).
func New(registry ScraperService, store DocumentStore, splitOpts splitter.Options, concurrency int, callbacks Callbacks) *Manager {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	return &Manager{
		concurrency: concurrency,
		queue:       nil,
		jobs:        make(map[string]*entry),
		pool:        pool.New().WithMaxGoroutines(concurrency),
		registry:    registry,
		store:       store,
		splitOpts:   splitOpts,
		callbacks:   callbacks,
	}
}

// Start begins accepting scheduling opportunities. Idempotent.
func (m *Manager) Start() {
	m.mu.Lock()
	already := m.started
	m.started = true
	m.mu.Unlock()

	if !already {
		m.schedule()
	}
}

// Stop stops launching new workers from the queue; already-running jobs are
// not cancelled (§4.8 "stop()").
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.started = false
}

// EnqueueJob creates a job in QUEUED, returns its id, and triggers
// scheduling (§4.8 "enqueueJob").
func (m *Manager) EnqueueJob(lib core.Library, seedURL string, opts core.CrawlOptions) string {
	job := &core.Job{
		ID:        uuid.New().String(),
		Library:   lib,
		Options:   opts,
		SeedURL:   seedURL,
		Status:    core.JobQueued,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.jobs[job.ID] = &entry{job: job, cancel: &cancelHandle{}, done: make(chan struct{})}
	m.queue = append(m.queue, job.ID)
	m.mu.Unlock()

	m.fireStatusChange(job)
	m.schedule()

	return job.ID
}

// GetJob returns a snapshot of the job, or false if no such job exists.
func (m *Manager) GetJob(id string) (core.Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.jobs[id]
	if !ok {
		return core.Job{}, false
	}

	return *e.job, true
}

// GetJobs returns a snapshot of every job, optionally filtered by status.
func (m *Manager) GetJobs(statusFilter *core.JobStatus) []core.Job {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]core.Job, 0, len(m.jobs))

	for _, e := range m.jobs {
		if statusFilter != nil && e.job.Status != *statusFilter {
			continue
		}

		out = append(out, *e.job)
	}

	return out
}

// WaitForJobCompletion blocks until the job reaches a terminal status,
// returning nil for COMPLETED or the job's error for FAILED/CANCELLED
// (§4.8 "waitForJobCompletion").
func (m *Manager) WaitForJobCompletion(ctx context.Context, id string) error {
	m.mu.Lock()
	e, ok := m.jobs[id]
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("unknown job %s", id)
	}

	select {
	case <-e.done:
		m.mu.Lock()
		err := e.waitErr
		m.mu.Unlock()

		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CancelJob cancels a job (§4.8 "cancelJob"). A QUEUED job is dropped from
// the queue and transitions directly to CANCELLED; a RUNNING job transitions
// to CANCELLING and has its cancellation handle tripped, leaving the worker
// responsible for the final CANCELLED transition. Terminal or already
// CANCELLING jobs are a no-op.
func (m *Manager) CancelJob(id string) error {
	m.mu.Lock()

	e, ok := m.jobs[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("unknown job %s", id)
	}

	switch e.job.Status {
	case core.JobQueued:
		m.removeFromQueue(id)
		e.job.Status = core.JobCancelled
		m.finish(e, fmt.Errorf("%w", core.ErrCancelled))
		m.mu.Unlock()
		m.fireStatusChange(e.job)

		return nil
	case core.JobRunning:
		e.job.Status = core.JobCancelling
		e.cancel.Trip()
		m.mu.Unlock()
		m.fireStatusChange(e.job)

		return nil
	default:
		m.mu.Unlock()
		return nil
	}
}

func (m *Manager) removeFromQueue(id string) {
	for i, qid := range m.queue {
		if qid == id {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			return
		}
	}
}

// finish marks an entry done and records its completion error. Must be
// called with m.mu held, and only once per entry.
func (m *Manager) finish(e *entry, err error) {
	if e.waitErrSet {
		return
	}

	e.waitErr = err
	e.waitErrSet = true

	now := time.Now()
	e.job.FinishedAt = &now

	close(e.done)
}

func (m *Manager) fireStatusChange(job *core.Job) {
	if m.callbacks.OnJobStatusChange != nil {
		m.callbacks.OnJobStatusChange(job)
	}
}

// schedule launches new workers while the manager is started, active is
// below concurrency, and the queue is non-empty (§5 "Scheduling model").
func (m *Manager) schedule() {
	for {
		m.mu.Lock()

		if !m.started || m.active >= m.concurrency || len(m.queue) == 0 {
			m.mu.Unlock()
			return
		}

		id := m.queue[0]
		m.queue = m.queue[1:]
		e := m.jobs[id]

		now := time.Now()
		e.job.Status = core.JobRunning
		e.job.StartedAt = &now
		m.active++

		m.mu.Unlock()

		m.fireStatusChange(e.job)

		m.pool.Go(func() {
			m.runWorker(e)

			m.mu.Lock()
			m.active--
			m.mu.Unlock()

			m.schedule()
		})
	}
}
