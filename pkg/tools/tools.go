// Package tools implements the thin orchestrators described in §4.9: each
// has a single entry point and a domain-specific error shape, and composes
// the store, retriever, job manager, and semver resolver rather than
// owning any business logic of its own.
package tools

import (
	"context"

	"github.com/ksysoev/docindex/pkg/core"
)

// DocumentStore is the store capability the tool surface depends on.
type DocumentStore interface {
	ListLibraries(ctx context.Context) ([]core.LibraryInfo, error)
	RemoveLibraryVersion(ctx context.Context, lib core.Library) error
}

// Retriever is the hybrid-search-plus-expansion capability the Search tool depends on.
type Retriever interface {
	Query(ctx context.Context, lib core.Library, query string, limit int) ([]core.ExpandedResult, error)
}

// JobManager is the scheduling capability the Scrape and job-control tools depend on.
type JobManager interface {
	EnqueueJob(lib core.Library, seedURL string, opts core.CrawlOptions) string
	WaitForJobCompletion(ctx context.Context, id string) error
	GetJob(id string) (core.Job, bool)
	GetJobs(statusFilter *core.JobStatus) []core.Job
	CancelJob(id string) error
}

// Tools composes the core/jobs/store/retriever surface into the tool
// contracts described in §4.9.
type Tools struct {
	store     DocumentStore
	retriever Retriever
	jobs      JobManager
}

// New builds a Tools instance over the given dependencies.
func New(store DocumentStore, retriever Retriever, jobs JobManager) *Tools {
	return &Tools{store: store, retriever: retriever, jobs: jobs}
}
