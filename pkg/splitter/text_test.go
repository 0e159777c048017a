package splitter

import (
	"strings"
	"testing"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitText_FitsAsIs(t *testing.T) {
	chunks, err := SplitText("short content", 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"short content"}, chunks)
}

func TestSplitText_ByParagraph(t *testing.T) {
	content := "para one here.\n\npara two here.\n\npara three here."
	chunks, err := SplitText(content, 20)
	require.NoError(t, err)

	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 20)
	}
	assert.Equal(t, content, strings.Join(chunks, "\n\n"))
}

func TestSplitText_FallsBackToWords(t *testing.T) {
	content := "aaaaaaaaaa bbbbbbbbbb cccccccccc dddddddddd"
	chunks, err := SplitText(content, 12)
	require.NoError(t, err)

	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 12)
	}
}

func TestSplitText_MinimumChunkSize(t *testing.T) {
	content := "thiswordaloneisalreadywaytoolongtofit anotherword"
	_, err := SplitText(content, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMinimumChunkSize)
}
