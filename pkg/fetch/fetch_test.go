package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_RetriesOn502ThenSucceeds(t *testing.T) {
	var calls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher()

	rc, err := f.Fetch(context.Background(), srv.URL, core.FetchOptions{
		FollowRedirects:  true,
		RetryBaseSeconds: 0.001,
		RetryMaxAttempts: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", string(rc.Bytes))
	assert.Equal(t, 3, calls)
}

func TestHTTPFetcher_NoRetryOn4xx(t *testing.T) {
	var calls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher()

	_, err := f.Fetch(context.Background(), srv.URL, core.FetchOptions{
		FollowRedirects:  true,
		RetryBaseSeconds: 0.001,
		RetryMaxAttempts: 5,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrFetchFatal))
	assert.Equal(t, 1, calls)
}

func TestHTTPFetcher_RedirectBlocked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "https://example.com/other")
		w.WriteHeader(http.StatusFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher()

	_, err := f.Fetch(context.Background(), srv.URL, core.FetchOptions{
		FollowRedirects:  false,
		RetryBaseSeconds: 0.001,
		RetryMaxAttempts: 2,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrRedirectBlocked))

	var redirErr *RedirectError
	require.True(t, errors.As(err, &redirErr))
	assert.Equal(t, http.StatusFound, redirErr.StatusCode)
}

func TestRegistry_NoStrategy(t *testing.T) {
	r := NewRegistry(NewHTTPFetcher())

	_, err := r.Fetch(context.Background(), "ftp://example.com", core.FetchOptions{})
	assert.True(t, errors.Is(err, core.ErrNoStrategy))
}

func TestFileFetcher(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/doc.md"
	require.NoError(t, os.WriteFile(path, []byte("# Hello"), 0o644))

	f := NewFileFetcher()
	assert.True(t, f.CanFetch("file://"+path))

	rc, err := f.Fetch(context.Background(), "file://"+path, core.FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "# Hello", string(rc.Bytes))
	assert.Equal(t, "text/markdown", rc.MimeType)
}
