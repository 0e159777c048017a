package tools

import (
	"context"
	"fmt"

	"github.com/ksysoev/docindex/pkg/core"
)

// ListLibraries returns every indexed (library, versions) summary.
func (t *Tools) ListLibraries(ctx context.Context) ([]core.LibraryInfo, error) {
	libs, err := t.store.ListLibraries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list libraries: %w", err)
	}

	return libs, nil
}

// ListJobs returns jobs known to the manager, optionally filtered by status.
func (t *Tools) ListJobs(statusFilter *core.JobStatus) []core.Job {
	return t.jobs.GetJobs(statusFilter)
}
