package middleware

import (
	"bufio"
	"context"
	"strings"

	"github.com/ksysoev/docindex/pkg/core"
)

// MetadataExtractHTMLStep fills pc.Metadata["title"] from the <title>
// element (§4.3.3).
func MetadataExtractHTMLStep() Step {
	return func(_ context.Context, pc *core.ProcessingContext) error {
		titles := pc.DOM.Find("title")

		title := ""
		if len(titles) > 0 {
			title = strings.TrimSpace(titles[0])
		}

		setMetadata(pc, "title", title)

		return nil
	}
}

// MetadataExtractMarkdownStep sets pc.Metadata["title"] from the first
// `# Heading` line, or "Untitled" if none is present (§4.3.4).
func MetadataExtractMarkdownStep() Step {
	return func(_ context.Context, pc *core.ProcessingContext) error {
		title := firstH1(string(pc.Content))
		if title == "" {
			title = "Untitled"
		}

		setMetadata(pc, "title", title)

		return nil
	}
}

func firstH1(content string) string {
	scanner := bufio.NewScanner(strings.NewReader(content))

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}

	return ""
}

func setMetadata(pc *core.ProcessingContext, key, value string) {
	if pc.Metadata == nil {
		pc.Metadata = map[string]string{}
	}

	pc.Metadata[key] = value
}
