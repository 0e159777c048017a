package scraper

import (
	"testing"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestWebStrategy_CanHandle(t *testing.T) {
	w := &WebStrategy{}
	assert.True(t, w.CanHandle("https://example.com/docs"))
	assert.True(t, w.CanHandle("http://example.com/docs"))
	assert.False(t, w.CanHandle("file:///tmp/docs"))
	assert.False(t, w.CanHandle("ftp://example.com"))
}

func TestWebStrategy_FilterLinks_Scope(t *testing.T) {
	w := &WebStrategy{}

	links := []string{
		"https://example.com/docs/guide",
		"https://example.com/blog/post",
		"https://other.com/docs/guide",
	}

	opts := core.CrawlOptions{Scope: core.ScopeSubpages}
	out := w.filterLinks(links, "https://example.com/docs", opts)

	assert.Equal(t, []string{"https://example.com/docs/guide"}, out)
}

func TestWebStrategy_FilterLinks_Predicate(t *testing.T) {
	w := &WebStrategy{}

	links := []string{
		"https://example.com/docs/a",
		"https://example.com/docs/b",
	}

	opts := core.CrawlOptions{
		Scope:         core.ScopeHostname,
		LinkPredicate: func(l string) bool { return l == "https://example.com/docs/a" },
	}

	out := w.filterLinks(links, "https://example.com/docs", opts)
	assert.Equal(t, []string{"https://example.com/docs/a"}, out)
}

func TestWebStrategy_FilterLinks_DefaultScope(t *testing.T) {
	w := &WebStrategy{}

	links := []string{"https://example.com/docs/sub", "https://example.com/other"}
	out := w.filterLinks(links, "https://example.com/docs", core.CrawlOptions{})

	assert.Equal(t, []string{"https://example.com/docs/sub"}, out)
}
