package scraper

import (
	"context"
	"testing"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStrategy struct {
	prefix string
}

func (f *fakeStrategy) CanHandle(seedURL string) bool {
	return len(seedURL) >= len(f.prefix) && seedURL[:len(f.prefix)] == f.prefix
}

func (f *fakeStrategy) Scrape(context.Context, string, core.CrawlOptions, ProgressFunc, Cancelled) error {
	return nil
}

func TestRegistry_Resolve_FirstMatchWins(t *testing.T) {
	a := &fakeStrategy{prefix: "https://github.com"}
	b := &fakeStrategy{prefix: "https://"}

	reg := NewRegistry(a, b)

	got, err := reg.Resolve("https://github.com/ksysoev/docindex")
	require.NoError(t, err)
	assert.Same(t, a, got)

	got, err = reg.Resolve("https://example.com")
	require.NoError(t, err)
	assert.Same(t, b, got)
}

func TestRegistry_Resolve_NoStrategy(t *testing.T) {
	reg := NewRegistry(&fakeStrategy{prefix: "https://github.com"})

	_, err := reg.Resolve("ftp://example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNoStrategy)
}
