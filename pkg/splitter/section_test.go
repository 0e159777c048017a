package splitter

import (
	"testing"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSections_HeadingPaths(t *testing.T) {
	md := "# Title\n\nIntro text.\n\n## Sub\n\nSub text.\n\n### Deep\n\nDeep text.\n\n## Sub2\n\nSub2 text.\n"

	sections, err := SplitSections(md)
	require.NoError(t, err)
	require.NotEmpty(t, sections)

	var paths []core.SectionPath
	for _, s := range sections {
		if s.Content[0].Type == core.SectionHeading {
			paths = append(paths, s.Path)
		}
	}

	require.Len(t, paths, 4)
	assert.Equal(t, core.SectionPath{"Title"}, paths[0])
	assert.Equal(t, core.SectionPath{"Title", "Sub"}, paths[1])
	assert.Equal(t, core.SectionPath{"Title", "Sub", "Deep"}, paths[2])
	assert.Equal(t, core.SectionPath{"Title", "Sub2"}, paths[3])
}

func TestSplitSections_CodeBlockLanguage(t *testing.T) {
	md := "# Title\n\n```go\nfunc main() {}\n```\n"

	sections, err := SplitSections(md)
	require.NoError(t, err)

	var codeSection *core.Section
	for i := range sections {
		if sections[i].Content[0].Type == core.SectionCode {
			codeSection = &sections[i]
		}
	}

	require.NotNil(t, codeSection)
	assert.Contains(t, codeSection.Content[0].Text, "```go")
	assert.Contains(t, codeSection.Content[0].Text, "func main")
}

func TestSplitSections_Table(t *testing.T) {
	md := "# Title\n\n| a | b |\n| --- | --- |\n| 1 | 2 |\n"

	sections, err := SplitSections(md)
	require.NoError(t, err)

	var found bool
	for _, s := range sections {
		if s.Content[0].Type == core.SectionTable {
			found = true
			assert.Contains(t, s.Content[0].Text, "|")
		}
	}

	assert.True(t, found)
}

func TestSplitSections_TextUnderHeading(t *testing.T) {
	md := "# Title\n\nSome paragraph content.\n"

	sections, err := SplitSections(md)
	require.NoError(t, err)

	var textSection *core.Section
	for i := range sections {
		if sections[i].Content[0].Type == core.SectionText {
			textSection = &sections[i]
		}
	}

	require.NotNil(t, textSection)
	assert.Equal(t, core.SectionPath{"Title"}, textSection.Path)
	assert.Equal(t, 1, textSection.Level)
}
