package tools

import (
	"fmt"

	"github.com/ksysoev/docindex/pkg/core"
)

// ErrJobNotFound signals a job id that the manager has no record of.
var ErrJobNotFound = fmt.Errorf("job not found")

// GetJobInfo returns the current snapshot of a job.
func (t *Tools) GetJobInfo(jobID string) (core.Job, error) {
	job, ok := t.jobs.GetJob(jobID)
	if !ok {
		return core.Job{}, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}

	return job, nil
}

// CancelJob requests cancellation of a queued or running job.
func (t *Tools) CancelJob(jobID string) error {
	if err := t.jobs.CancelJob(jobID); err != nil {
		return fmt.Errorf("cancel job %s: %w", jobID, err)
	}

	return nil
}
