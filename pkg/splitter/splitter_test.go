package splitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_EndToEnd(t *testing.T) {
	var body strings.Builder
	for i := 0; i < 30; i++ {
		body.WriteString("This is a reasonably long paragraph used to pad out the section content so it exceeds the coalescing minimum chunk size threshold. ")
	}

	md := "# Title\n\n" + body.String() + "\n\n## Section Two\n\nShort text.\n"

	chunks, err := Split(md, DefaultOptions)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for _, c := range chunks {
		assert.LessOrEqual(t, len(c.Content), DefaultOptions.Max)
	}

	assert.Equal(t, []string{"Title"}, []string(chunks[0].Path))
}

func TestSplit_SmallDocumentSingleChunk(t *testing.T) {
	md := "# Title\n\nJust a short doc.\n"

	chunks, err := Split(md, DefaultOptions)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0].Content, "Title")
	assert.Contains(t, chunks[0].Content, "short doc")
}
