package jobs

import (
	"context"
	"testing"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/ksysoev/docindex/pkg/splitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const openAPISnippet = `
openapi: 3.0.0
info:
  title: Widgets API
paths:
  /widgets:
    get:
      summary: List widgets
`

type recordingStore struct {
	chunks []core.Chunk
}

func (s *recordingStore) PutPage(_ context.Context, _ core.Library, _ string, chunks []core.Chunk) error {
	s.chunks = chunks
	return nil
}

func TestStorePage_RoutesOpenAPIToDedicatedSplitter(t *testing.T) {
	store := &recordingStore{}
	m := New(&fakeRegistry{}, store, splitter.DefaultOptions, 1, Callbacks{})

	page := &core.CrawledPage{
		URL:     "file:///docs/openapi.yaml",
		Content: openAPISnippet,
		DocKind: core.DocKindOpenAPI,
	}

	require.NoError(t, m.storePage(context.Background(), core.Library{Name: "acme"}, page))
	require.NotEmpty(t, store.chunks)
	assert.Equal(t, core.SectionPath{"paths", "/widgets", "GET"}, store.chunks[len(store.chunks)-1].Path)
}

func TestStorePage_RoutesMarkdownToSectionSplitter(t *testing.T) {
	store := &recordingStore{}
	m := New(&fakeRegistry{}, store, splitter.DefaultOptions, 1, Callbacks{})

	page := &core.CrawledPage{
		URL:     "https://example.com/docs",
		Content: "# Title\n\nSome body text.\n",
		DocKind: core.DocKindMarkdown,
	}

	require.NoError(t, m.storePage(context.Background(), core.Library{Name: "acme"}, page))
	require.NotEmpty(t, store.chunks)
	assert.Equal(t, core.SectionPath{"Title"}, store.chunks[0].Path)
}
