package core

import "time"

// JobStatus is the job lifecycle state machine (§3, §4.8):
// QUEUED -> RUNNING -> (COMPLETED | FAILED | CANCELLING -> CANCELLED).
type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobRunning    JobStatus = "running"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
	JobCancelling JobStatus = "cancelling"
	JobCancelled  JobStatus = "cancelled"
)

// Terminal reports whether the status is one no job transitions out of.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobCompleted, JobFailed, JobCancelled:
		return true
	default:
		return false
	}
}

// JobProgress is the snapshot streamed via onJobProgress and queryable
// mid-flight through GetJob (§4.4 step 4, SPEC_FULL supplemented feature #2).
type JobProgress struct {
	PagesScraped int
	MaxPages     int
	CurrentURL   string
	Depth        int
	MaxDepth     int
}

// Job is the unit of work tracked by the job manager (§3 "Job").
type Job struct {
	ID         string
	Library    Library
	Options    CrawlOptions
	SeedURL    string
	Status     JobStatus
	Progress   JobProgress
	Err        error
	CreatedAt  time.Time
	StartedAt  *time.Time
	FinishedAt *time.Time
}
