package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/ksysoev/docindex/pkg/scraper"
	"github.com/ksysoev/docindex/pkg/splitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStrategy struct {
	canHandle bool
	pages     []core.CrawledPage
	err       error
	cancelled bool
	block     chan struct{}
}

func (s *fakeStrategy) CanHandle(string) bool { return s.canHandle }

func (s *fakeStrategy) Scrape(_ context.Context, _ string, _ core.CrawlOptions, progress scraper.ProgressFunc, cancelled scraper.Cancelled) error {
	if s.block != nil {
		<-s.block
	}

	if cancelled() {
		s.cancelled = true
		return core.ErrCancelled
	}

	for i, p := range s.pages {
		if cancelled() {
			s.cancelled = true
			return core.ErrCancelled
		}

		page := p
		progress(core.JobProgress{PagesScraped: i + 1}, &page)
	}

	return s.err
}

type fakeRegistry struct {
	strategy *fakeStrategy
	err      error
}

func (r *fakeRegistry) Resolve(string) (scraper.Strategy, error) {
	if r.err != nil {
		return nil, r.err
	}

	return r.strategy, nil
}

type fakeDocStore struct {
	mu    sync.Mutex
	pages []string
}

func (s *fakeDocStore) PutPage(_ context.Context, _ core.Library, url string, _ []core.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pages = append(s.pages, url)

	return nil
}

func waitForStatus(t *testing.T, m *Manager, id string, status core.JobStatus) core.Job {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)

	for time.Now().Before(deadline) {
		job, ok := m.GetJob(id)
		require.True(t, ok)

		if job.Status == status {
			return job
		}

		time.Sleep(time.Millisecond)
	}

	t.Fatalf("job %s never reached status %s", id, status)

	return core.Job{}
}

func TestManager_EnqueueJob_CompletesSuccessfully(t *testing.T) {
	strategy := &fakeStrategy{
		canHandle: true,
		pages: []core.CrawledPage{
			{URL: "https://example.com/a", Content: "Hello world."},
		},
	}

	docStore := &fakeDocStore{}
	m := New(&fakeRegistry{strategy: strategy}, docStore, splitter.DefaultOptions, 2, Callbacks{})
	m.Start()

	id := m.EnqueueJob(core.Library{Name: "acme"}, "https://example.com", core.CrawlOptions{MaxPages: 1})

	err := m.WaitForJobCompletion(context.Background(), id)
	require.NoError(t, err)

	job := waitForStatus(t, m, id, core.JobCompleted)
	assert.Equal(t, core.JobCompleted, job.Status)
	assert.Len(t, docStore.pages, 1)
}

func TestManager_EnqueueJob_NoStrategyFails(t *testing.T) {
	m := New(&fakeRegistry{err: core.ErrNoStrategy}, &fakeDocStore{}, splitter.DefaultOptions, 1, Callbacks{})
	m.Start()

	id := m.EnqueueJob(core.Library{Name: "acme"}, "ftp://nope", core.CrawlOptions{})

	err := m.WaitForJobCompletion(context.Background(), id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNoStrategy))

	job := waitForStatus(t, m, id, core.JobFailed)
	assert.Equal(t, core.JobFailed, job.Status)
}

func TestManager_CancelJob_Queued(t *testing.T) {
	strategy := &fakeStrategy{canHandle: true, block: make(chan struct{})}
	m := New(&fakeRegistry{strategy: strategy}, &fakeDocStore{}, splitter.DefaultOptions, 1, Callbacks{})

	// Fill the only worker slot with a blocked job, then enqueue a second
	// one that will stay queued behind it.
	m.Start()
	blocked := m.EnqueueJob(core.Library{Name: "acme"}, "https://example.com/1", core.CrawlOptions{})
	waitForStatus(t, m, blocked, core.JobRunning)

	queuedID := m.EnqueueJob(core.Library{Name: "acme"}, "https://example.com/2", core.CrawlOptions{})

	job, ok := m.GetJob(queuedID)
	require.True(t, ok)
	assert.Equal(t, core.JobQueued, job.Status)

	require.NoError(t, m.CancelJob(queuedID))

	job, ok = m.GetJob(queuedID)
	require.True(t, ok)
	assert.Equal(t, core.JobCancelled, job.Status)

	close(strategy.block)
}

func TestManager_CancelJob_Running(t *testing.T) {
	block := make(chan struct{})
	strategy := &fakeStrategy{canHandle: true, block: block}

	m := New(&fakeRegistry{strategy: strategy}, &fakeDocStore{}, splitter.DefaultOptions, 1, Callbacks{})
	m.Start()

	id := m.EnqueueJob(core.Library{Name: "acme"}, "https://example.com", core.CrawlOptions{})
	waitForStatus(t, m, id, core.JobRunning)

	require.NoError(t, m.CancelJob(id))

	job, ok := m.GetJob(id)
	require.True(t, ok)
	assert.Equal(t, core.JobCancelling, job.Status)

	close(block)

	job = waitForStatus(t, m, id, core.JobCancelled)
	assert.True(t, strategy.cancelled)
	assert.Equal(t, core.JobCancelled, job.Status)
}

func TestManager_GetJobs_FiltersByStatus(t *testing.T) {
	strategy := &fakeStrategy{canHandle: true}
	m := New(&fakeRegistry{strategy: strategy}, &fakeDocStore{}, splitter.DefaultOptions, 2, Callbacks{})
	m.Start()

	id := m.EnqueueJob(core.Library{Name: "acme"}, "https://example.com", core.CrawlOptions{})
	require.NoError(t, m.WaitForJobCompletion(context.Background(), id))

	completed := core.JobCompleted
	jobs := m.GetJobs(&completed)
	require.Len(t, jobs, 1)
	assert.Equal(t, id, jobs[0].ID)

	failed := core.JobFailed
	assert.Empty(t, m.GetJobs(&failed))
}
