package splitter

import "strings"

// recursiveSeparators are tried from coarsest to finest; the empty string is
// never reached because truncateChunks handles the terminal case directly
// (§4.5 "generic recursive character splitter").
var recursiveSeparators = []string{"\n\n", "\n", ". ", " "}

// RecursiveSplit is the section splitter's guaranteed-termination fallback,
// invoked when a content-specific splitter fails with ErrMinimumChunkSize.
// It tries progressively finer separators and falls back to a hard
// truncation at max as an absolute last resort.
func RecursiveSplit(content string, max int) []string {
	if len(content) <= max {
		return []string{content}
	}

	for _, sep := range recursiveSeparators {
		units := strings.Split(content, sep)
		if len(units) < 2 {
			continue
		}

		if chunks, ok := greedyMerge(units, sep, max); ok {
			return chunks
		}
	}

	return truncateChunks(content, max)
}

func truncateChunks(content string, max int) []string {
	if max <= 0 {
		return []string{content}
	}

	var out []string

	for len(content) > max {
		out = append(out, content[:max])
		content = content[max:]
	}

	if len(content) > 0 {
		out = append(out, content)
	}

	return out
}
