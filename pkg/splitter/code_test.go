package splitter

import (
	"strings"
	"testing"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCode_FitsAsIs(t *testing.T) {
	content := "```go\nfmt.Println(\"hi\")\n```"
	chunks, err := SplitCode(content, 1000)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.True(t, strings.HasPrefix(chunks[0], "```go\n"))
	assert.Contains(t, chunks[0], "fmt.Println")
}

func TestSplitCode_SplitsLongBody(t *testing.T) {
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, "line number with some padding to add length")
	}

	content := "```go\n" + strings.Join(lines, "\n") + "\n```"
	chunks, err := SplitCode(content, 200)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 200)
		assert.True(t, strings.HasPrefix(c, "```go\n"))
		assert.True(t, strings.HasSuffix(c, "\n```"))
	}
}

func TestSplitCode_MinimumChunkSize(t *testing.T) {
	content := "```go\n" + strings.Repeat("x", 500) + "\n```"
	_, err := SplitCode(content, 50)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMinimumChunkSize)
}
