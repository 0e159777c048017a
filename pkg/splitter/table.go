package splitter

import (
	"fmt"
	"strings"

	"github.com/ksysoev/docindex/pkg/core"
)

// SplitTable implements the table content splitter (§4.5 "Table splitter").
// content is a Markdown pipe table: a header row, a separator row, then data
// rows. Each emitted chunk repeats the header and separator.
func SplitTable(content string, max int) ([]string, error) {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(lines) < 2 {
		if len(content) <= max {
			return []string{content}, nil
		}

		return nil, fmt.Errorf("%w: table header exceeds max %d", core.ErrMinimumChunkSize, max)
	}

	header := lines[0] + "\n" + lines[1]
	rows := lines[2:]

	if len(header)+1+maxLineLen(rows) > max && len(rows) > 0 {
		return nil, fmt.Errorf("%w: header + one row exceeds max %d", core.ErrMinimumChunkSize, max)
	}

	var (
		chunks []string
		cur    []string
		curLen = len(header)
	)

	flush := func() {
		if len(cur) > 0 {
			chunks = append(chunks, header+"\n"+strings.Join(cur, "\n"))
			cur = nil
			curLen = len(header)
		}
	}

	for _, row := range rows {
		rowLen := len(row) + 1
		if len(cur) > 0 && curLen+rowLen > max {
			flush()
		}

		cur = append(cur, row)
		curLen += rowLen
	}

	flush()

	if len(chunks) == 0 {
		chunks = []string{header}
	}

	return chunks, nil
}

func maxLineLen(lines []string) int {
	max := 0
	for _, l := range lines {
		if len(l) > max {
			max = len(l)
		}
	}

	return max
}
