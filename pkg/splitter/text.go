package splitter

import (
	"fmt"
	"strings"

	"github.com/ksysoev/docindex/pkg/core"
)

// SplitText implements the text content splitter (§4.5 "Text splitter"):
// paragraphs, then lines, then word-boundary packing, each tried in turn
// until every resulting chunk fits max.
func SplitText(content string, max int) ([]string, error) {
	if len(content) <= max {
		return []string{content}, nil
	}

	if chunks, ok := greedyMerge(strings.Split(content, "\n\n"), "\n\n", max); ok {
		return chunks, nil
	}

	if chunks, ok := greedyMerge(strings.Split(content, "\n"), "\n", max); ok {
		return chunks, nil
	}

	return splitByWords(content, max)
}

// greedyMerge greedily remerges units with sep between them, each merged
// chunk capped at max bytes. ok is false when any single unit alone exceeds
// max, signalling the caller should fall back to a finer-grained split.
func greedyMerge(units []string, sep string, max int) (chunks []string, ok bool) {
	for _, u := range units {
		if len(u) > max {
			return nil, false
		}
	}

	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
	}

	for _, u := range units {
		extra := len(u)
		if cur.Len() > 0 {
			extra += len(sep)
		}

		if cur.Len() > 0 && cur.Len()+extra > max {
			flush()
		}

		if cur.Len() > 0 {
			cur.WriteString(sep)
		}

		cur.WriteString(u)
	}

	flush()

	return chunks, true
}

// splitByWords is the text splitter's last resort: greedy word-boundary
// packing targeting max. Returns ErrMinimumChunkSize when a single word
// alone exceeds max.
func splitByWords(content string, max int) ([]string, error) {
	words := strings.Fields(content)

	var (
		chunks []string
		cur    strings.Builder
	)

	for _, w := range words {
		if len(w) > max {
			return nil, fmt.Errorf("%w: word of %d bytes exceeds max %d", core.ErrMinimumChunkSize, len(w), max)
		}

		extra := len(w)
		if cur.Len() > 0 {
			extra++
		}

		if cur.Len() > 0 && cur.Len()+extra > max {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}

		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}

		cur.WriteString(w)
	}

	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}

	return chunks, nil
}
