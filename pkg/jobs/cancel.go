package jobs

import "sync"

// cancelHandle is the cancellation signal a running job's crawl checks at
// every loop boundary (§5 "Cancellation").
type cancelHandle struct {
	mu        sync.Mutex
	cancelled bool
}

// Trip marks the handle as cancelled. Idempotent.
func (h *cancelHandle) Trip() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.cancelled = true
}

// Cancelled reports whether Trip has been called. Satisfies scraper.Cancelled.
func (h *cancelHandle) Cancelled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.cancelled
}
