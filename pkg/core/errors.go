package core

import "errors"

// Error taxonomy shared across packages. Each package wraps these sentinels
// with context via fmt.Errorf("...: %w", ...); callers use errors.Is/As
// rather than switching on error strings.
var (
	// ErrInvalidURL signals a parse failure or unsupported scheme (§4.1/§7).
	ErrInvalidURL = errors.New("invalid url")

	// ErrNoStrategy signals that no registered scraper strategy accepts a URL (§4.4/§7).
	ErrNoStrategy = errors.New("no strategy for url")

	// ErrFetchRetryable signals a transport error or 5xx response that the
	// fetcher's retry policy already exhausted (§4.2/§7).
	ErrFetchRetryable = errors.New("fetch failed: retryable")

	// ErrFetchFatal signals a 4xx response or other non-retryable fetch failure (§4.2/§7).
	ErrFetchFatal = errors.New("fetch failed: fatal")

	// ErrRedirectBlocked signals a blocked redirect when follow-redirects is disabled (§4.2).
	ErrRedirectBlocked = errors.New("redirect blocked")

	// ErrMinimumChunkSize signals a splitter could not honor the max chunk size (§4.5/§7).
	ErrMinimumChunkSize = errors.New("content below minimum splittable size")

	// ErrDimension signals an embedding model's output exceeds the store's
	// fixed vector dimension without opt-in truncation (§4.6/§7).
	ErrDimension = errors.New("embedding exceeds store dimension")

	// ErrLibraryNotFound signals a library name has no indexed documents (§4.9/§7).
	ErrLibraryNotFound = errors.New("library not found")

	// ErrVersionNotFound signals no stored version satisfies a query (§4.9/§6/§7).
	ErrVersionNotFound = errors.New("version not found")

	// ErrCancelled signals a job-level cancellation; always final (§4.8/§7).
	ErrCancelled = errors.New("job cancelled")

	// ErrStore signals corrupt state or an I/O failure in the persistent store (§7).
	ErrStore = errors.New("store error")
)
