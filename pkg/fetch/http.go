package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ksysoev/docindex/pkg/core"
)

// defaultRetryBaseSeconds and defaultRetryMaxAttempts implement the backoff
// policy `base * 2^attempt` described in §4.2.
const (
	defaultRetryBaseSeconds = 1.0
	defaultRetryMaxAttempts = 6
)

// RedirectError carries the fields required when a blocked redirect is hit (§4.2).
type RedirectError struct {
	OriginalURL string
	RedirectURL string
	StatusCode  int
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("redirect blocked: %s -> %s (status %d)", e.OriginalURL, e.RedirectURL, e.StatusCode)
}

func (e *RedirectError) Unwrap() error {
	return core.ErrRedirectBlocked
}

// HTTPFetcher issues GET requests with exponential-backoff retry on
// transport errors and 5xx responses (§4.2).
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher builds an HTTPFetcher with a default client.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{}}
}

// CanFetch reports whether source uses the http or https scheme.
func (f *HTTPFetcher) CanFetch(source string) bool {
	s := schemeOf(source)
	return s == "http" || s == "https"
}

// Fetch issues a GET for source, retrying transport errors and 5xx responses
// with exponential backoff, and fails fast on 4xx and blocked redirects.
func (f *HTTPFetcher) Fetch(ctx context.Context, source string, opts core.FetchOptions) (core.RawContent, error) {
	base := opts.RetryBaseSeconds
	if base <= 0 {
		base = defaultRetryBaseSeconds
	}

	maxAttempts := opts.RetryMaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryMaxAttempts
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	if !opts.FollowRedirects {
		client = shallowCopyNoRedirect(client)
	}

	var (
		result  core.RawContent
		attempt int
	)

	policy := backoff.WithMaxRetries(
		backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(time.Duration(base*float64(time.Second))),
			backoff.WithMultiplier(2),
			backoff.WithRandomizationFactor(0),
		),
		uint64(maxAttempts-1),
	)

	op := func() error {
		attempt++

		rc, err := f.doOnce(ctx, client, source, opts)
		if err != nil {
			var redirErr *RedirectError
			if asRedirectError(err, &redirErr) {
				return backoff.Permanent(err)
			}

			if isFatalStatus(err) {
				return backoff.Permanent(err)
			}

			slog.WarnContext(ctx, "fetch attempt failed, retrying", "source", source, "attempt", attempt, "err", err)

			return fmt.Errorf("%w: %w", core.ErrFetchRetryable, err)
		}

		result = rc

		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(policy, ctx)); err != nil {
		return core.RawContent{}, err
	}

	return result, nil
}

func (f *HTTPFetcher) doOnce(ctx context.Context, client *http.Client, source string, opts core.FetchOptions) (core.RawContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return core.RawContent{}, fmt.Errorf("%w: %w", core.ErrFetchFatal, err)
	}

	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return core.RawContent{}, err
	}
	defer resp.Body.Close()

	if !opts.FollowRedirects && resp.StatusCode >= 300 && resp.StatusCode < 400 {
		loc := resp.Header.Get("Location")
		return core.RawContent{}, &RedirectError{
			OriginalURL: source,
			RedirectURL: loc,
			StatusCode:  resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.RawContent{}, fmt.Errorf("%w: %w", core.ErrFetchRetryable, err)
	}

	if resp.StatusCode >= 500 {
		return core.RawContent{}, fmt.Errorf("%w: status %d", core.ErrFetchRetryable, resp.StatusCode)
	}

	if resp.StatusCode >= 400 {
		return core.RawContent{}, fmt.Errorf("%w: status %d", core.ErrFetchFatal, resp.StatusCode)
	}

	return core.RawContent{
		Bytes:    body,
		MimeType: resp.Header.Get("Content-Type"),
		Source:   source,
	}, nil
}

func isFatalStatus(err error) bool {
	return errors.Is(err, core.ErrFetchFatal)
}

func asRedirectError(err error, target **RedirectError) bool {
	re, ok := err.(*RedirectError)
	if ok {
		*target = re
	}

	return ok
}

func shallowCopyNoRedirect(c *http.Client) *http.Client {
	clone := *c
	clone.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &clone
}
