package splitter

import (
	"fmt"
	"strings"

	"github.com/ksysoev/docindex/pkg/core"
)

// SplitCode implements the code content splitter (§4.5 "Code splitter").
// content is expected to be a fenced block ("```lang\n...\n```"); fences are
// stripped, the body split by line, and lines greedily regrouped so each
// re-fenced chunk fits max.
func SplitCode(content string, max int) ([]string, error) {
	lang, body := stripFences(content)
	overhead := fenceOverhead(lang)

	lines := strings.Split(body, "\n")

	var (
		chunks []string
		cur    []string
		curLen = overhead
	)

	flush := func() {
		if len(cur) > 0 {
			chunks = append(chunks, fence(lang, strings.Join(cur, "\n")))
			cur = nil
			curLen = overhead
		}
	}

	for _, line := range lines {
		if overhead+len(line) > max {
			return nil, fmt.Errorf("%w: code line of %d bytes exceeds max %d with fencing", core.ErrMinimumChunkSize, len(line), max)
		}

		lineLen := len(line) + 1
		if len(cur) > 0 && curLen+lineLen > max {
			flush()
		}

		cur = append(cur, line)
		curLen += lineLen
	}

	flush()

	return chunks, nil
}

func stripFences(content string) (lang, body string) {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")

	nl := strings.IndexByte(trimmed, '\n')
	if nl < 0 {
		return "", strings.TrimSpace(trimmed)
	}

	return strings.TrimSpace(trimmed[:nl]), strings.Trim(trimmed[nl+1:], "\n")
}

func fence(lang, body string) string {
	return "```" + lang + "\n" + body + "\n```"
}

func fenceOverhead(lang string) int {
	return len("```"+lang+"\n") + len("\n```")
}
