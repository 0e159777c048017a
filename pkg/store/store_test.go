//go:build sqlite_vec && cgo

package store

import (
	"context"
	"testing"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedder returns a deterministic low-dimensional vector derived from
// the text length, enough to exercise dimension padding without depending on
// a real embedding provider.
type fakeEmbedder struct {
	dim int
	fn  func(text string) []float32
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if f.fn != nil {
		return f.fn(text), nil
	}

	vec := make([]float32, f.dim)
	for i := range vec {
		vec[i] = float32(len(text)%7) / 7.0
	}

	return vec, nil
}

func (f *fakeEmbedder) Dimension() int { return f.dim }

func newTestStore(t *testing.T, embedder Embedder) *Store {
	t.Helper()

	s, err := Open(":memory:", embedder)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestStore_PutPageAndListLibraries(t *testing.T) {
	s := newTestStore(t, &fakeEmbedder{dim: 8})

	chunks := []core.Chunk{
		{Types: map[core.SectionType]struct{}{core.SectionHeading: {}}, Content: "Intro", Level: 1, Path: core.SectionPath{"Intro"}},
		{Types: map[core.SectionType]struct{}{core.SectionText: {}}, Content: "Intro body text.", Level: 1, Path: core.SectionPath{"Intro"}},
	}

	lib := core.Library{Name: "Acme", Version: "1.0.0"}

	err := s.PutPage(context.Background(), lib, "https://example.com/docs", chunks)
	require.NoError(t, err)

	libs, err := s.ListLibraries(context.Background())
	require.NoError(t, err)
	require.Len(t, libs, 1)
	assert.Equal(t, "acme", libs[0].Library)
	assert.Equal(t, []string{"1.0.0"}, libs[0].Versions)
	assert.Equal(t, 2, libs[0].DocCount)
}

func TestStore_RemoveLibraryVersion(t *testing.T) {
	s := newTestStore(t, &fakeEmbedder{dim: 8})

	lib := core.Library{Name: "acme", Version: "1.0.0"}
	chunks := []core.Chunk{{Types: map[core.SectionType]struct{}{core.SectionText: {}}, Content: "body"}}

	require.NoError(t, s.PutPage(context.Background(), lib, "https://example.com", chunks))
	require.NoError(t, s.RemoveLibraryVersion(context.Background(), lib))

	libs, err := s.ListLibraries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, libs)
}

func TestStore_Search_HybridFusion(t *testing.T) {
	embedder := &fakeEmbedder{
		dim: 4,
		fn: func(text string) []float32 {
			switch text {
			case "cats are great pets":
				return []float32{1, 0, 0, 0}
			case "dogs are loyal companions":
				return []float32{0, 1, 0, 0}
			case "cats":
				return []float32{1, 0, 0, 0}
			default:
				return []float32{0, 0, 0, 0}
			}
		},
	}

	s := newTestStore(t, embedder)

	lib := core.Library{Name: "pets", Version: "1.0.0"}

	chunks := []core.Chunk{
		{Types: map[core.SectionType]struct{}{core.SectionText: {}}, Content: "cats are great pets"},
		{Types: map[core.SectionType]struct{}{core.SectionText: {}}, Content: "dogs are loyal companions"},
	}

	require.NoError(t, s.PutPage(context.Background(), lib, "https://example.com/pets", chunks))

	hits, err := s.Search(context.Background(), lib, "cats", 5)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Contains(t, hits[0].Content, "cats")
}

func TestStore_Navigation(t *testing.T) {
	s := newTestStore(t, &fakeEmbedder{dim: 4})

	lib := core.Library{Name: "acme", Version: "1.0.0"}

	chunks := []core.Chunk{
		{Content: "Title", Level: 1, Path: core.SectionPath{"Title"}},
		{Content: "Sub", Level: 2, Path: core.SectionPath{"Title", "Sub"}},
		{Content: "Sub body", Level: 2, Path: core.SectionPath{"Title", "Sub"}},
		{Content: "Sub2", Level: 2, Path: core.SectionPath{"Title", "Sub2"}},
	}

	require.NoError(t, s.PutPage(context.Background(), lib, "https://example.com/nav", chunks))

	libs, err := s.db.QueryContext(context.Background(), "SELECT id FROM documents ORDER BY sort_order")
	require.NoError(t, err)

	var ids []int64
	for libs.Next() {
		var id int64
		require.NoError(t, libs.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, libs.Close())
	require.Len(t, ids, 4)

	parent, ok, err := s.FindParentChunk(context.Background(), ids[1])
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Title", parent.Content)

	children, err := s.FindChildChunks(context.Background(), ids[0], 5)
	require.NoError(t, err)
	assert.Len(t, children, 3)

	preceding, err := s.FindPrecedingSiblingChunks(context.Background(), ids[2], 2)
	require.NoError(t, err)
	require.Len(t, preceding, 1)
	assert.Equal(t, "Sub", preceding[0].Content)

	subsequent, err := s.FindSubsequentSiblingChunks(context.Background(), ids[1], 2)
	require.NoError(t, err)
	require.Len(t, subsequent, 1)
	assert.Equal(t, "Sub body", subsequent[0].Content)
}

func TestDimensionPolicy_Fit(t *testing.T) {
	p := dimensionPolicy{d: 4}

	fitted, err := p.fit([]float32{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 0, 0}, fitted)

	_, err = p.fit([]float32{1, 2, 3, 4, 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDimension)

	p.allowTruncate = true
	fitted, err = p.fit([]float32{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4}, fitted)
}
