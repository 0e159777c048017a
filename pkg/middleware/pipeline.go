package middleware

import (
	"context"
	"strings"

	"github.com/ksysoev/docindex/pkg/core"
)

// Pipelines bundles the chains selected per content type, including the
// shared Renderer each web-strategy crawl owns for its lifetime (§4.3.1, §5).
type Pipelines struct {
	renderer      *Renderer
	html          *Chain
	htmlNoLinks   *Chain
	markdown      *Chain
	markdownLinks *Chain
}

// NewPipelines builds the per-content-type chains described in §4.3's
// "Pipeline composition" table. Run's extractLinks argument picks whether the
// HTML chain runs link-extract, matching "web strategy only" (§4.3).
func NewPipelines() *Pipelines {
	renderer := NewRenderer()

	return &Pipelines{
		renderer: renderer,
		html: NewChain(
			DynamicRenderStep(renderer),
			ParseStep(),
			MetadataExtractHTMLStep(),
			LinkExtractHTMLStep(),
			SanitizeStep(),
			HTMLToMarkdownStep(),
		),
		htmlNoLinks: NewChain(
			DynamicRenderStep(renderer),
			ParseStep(),
			MetadataExtractHTMLStep(),
			SanitizeStep(),
			HTMLToMarkdownStep(),
		),
		markdown: NewChain(
			MetadataExtractMarkdownStep(),
		),
		markdownLinks: NewChain(
			MetadataExtractMarkdownStep(),
			LinkExtractMarkdownStep(),
		),
	}
}

// Run selects the chain for pc.ContentType and runs it. extractLinks is only
// consulted for text/html content (the web strategy extracts links from HTML;
// the local-file strategy never extracts links from file content, per §4.4).
// Content types other than html/markdown/plain bypass the pipeline and are
// emitted as raw content (§4.3).
func (p *Pipelines) Run(ctx context.Context, pc *core.ProcessingContext, extractLinks bool) error {
	switch {
	case strings.HasPrefix(pc.ContentType, "text/html"):
		pc.ContentType = "text/html"

		if extractLinks {
			return p.html.Run(ctx, pc)
		}

		return p.htmlNoLinks.Run(ctx, pc)
	case strings.HasPrefix(pc.ContentType, "text/markdown"):
		if extractLinks {
			return p.markdownLinks.Run(ctx, pc)
		}

		return p.markdown.Run(ctx, pc)
	case strings.HasPrefix(pc.ContentType, "text/plain"):
		if extractLinks {
			return p.markdownLinks.Run(ctx, pc)
		}

		return p.markdown.Run(ctx, pc)
	default:
		return nil
	}
}

// Close tears down the shared headless-browser renderer. Must be called on
// every exit path of the crawl that created these Pipelines (§4.3.1, §5).
func (p *Pipelines) Close() error {
	return p.renderer.Close()
}
