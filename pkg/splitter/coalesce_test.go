package splitter

import (
	"strings"
	"testing"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunkOf(sectionType core.SectionType, text string, level int, path core.SectionPath) core.Chunk {
	return core.Chunk{
		Types:   map[core.SectionType]struct{}{sectionType: {}},
		Content: text,
		Level:   level,
		Path:    path,
	}
}

func TestCoalesce_MergesSmallAdjacent(t *testing.T) {
	chunks := []core.Chunk{
		chunkOf(core.SectionHeading, "Intro", 1, core.SectionPath{"Intro"}),
		chunkOf(core.SectionText, "small a", 1, core.SectionPath{"Intro"}),
		chunkOf(core.SectionText, "small b", 1, core.SectionPath{"Intro"}),
	}

	out := Coalesce(chunks, Options{Min: 500, Max: 1500})
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Content, "small a")
	assert.Contains(t, out[0].Content, "small b")
}

func TestCoalesce_RespectsMax(t *testing.T) {
	chunks := []core.Chunk{
		chunkOf(core.SectionText, strings.Repeat("a", 900), 0, nil),
		chunkOf(core.SectionText, strings.Repeat("b", 900), 0, nil),
	}

	out := Coalesce(chunks, Options{Min: 500, Max: 1500})
	require.Len(t, out, 2)
}

func TestCoalesce_NeverMergesAcrossH1(t *testing.T) {
	chunks := []core.Chunk{
		chunkOf(core.SectionHeading, "First", 1, core.SectionPath{"First"}),
		chunkOf(core.SectionText, "body one", 1, core.SectionPath{"First"}),
		chunkOf(core.SectionHeading, "Second", 1, core.SectionPath{"Second"}),
		chunkOf(core.SectionText, "body two", 1, core.SectionPath{"Second"}),
	}

	out := Coalesce(chunks, Options{Min: 500, Max: 1500})
	require.Len(t, out, 2)
	assert.Contains(t, out[0].Content, "First")
	assert.Contains(t, out[0].Content, "body one")
	assert.Contains(t, out[1].Content, "Second")
	assert.Contains(t, out[1].Content, "body two")
}

func TestMergePath(t *testing.T) {
	assert.Equal(t, core.SectionPath{"A", "B"}, mergePath(core.SectionPath{"A"}, core.SectionPath{"A", "B"}))
	assert.Equal(t, core.SectionPath{"A", "B"}, mergePath(core.SectionPath{"A", "B"}, core.SectionPath{"A"}))
	assert.Equal(t, core.SectionPath{"A"}, mergePath(core.SectionPath{"A", "B"}, core.SectionPath{"A", "C"}))
	assert.Equal(t, core.SectionPath(nil), mergePath(core.SectionPath{"X"}, core.SectionPath{"Y"}))
}
