package middleware

import (
	"context"
	"net/url"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/ksysoev/docindex/pkg/core"
)

// allowedLinkSchemes lists the schemes LinkExtractHTMLStep keeps (§4.3.5).
var allowedLinkSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"file":  true,
}

// LinkExtractHTMLStep collects every `<a href>`, resolves it against
// pc.Source, drops non-http/https/file schemes, deduplicates, and stores the
// result in pc.Links (§4.3.5). It operates on the raw goquery selection so
// it can walk individual anchors rather than the narrow core.DOM capability.
func LinkExtractHTMLStep() Step {
	return func(_ context.Context, pc *core.ProcessingContext) error {
		dom, ok := pc.DOM.(*goqueryDOM)
		if !ok {
			return nil
		}

		base, err := url.Parse(pc.Source)
		if err != nil {
			return err
		}

		seen := make(map[string]struct{})
		var links []string

		dom.Selection().Find("a[href]").Each(func(_ int, s *goquery.Selection) {
			href, ok := s.Attr("href")
			if !ok {
				return
			}

			resolved, ok := resolveLink(base, href)
			if !ok {
				return
			}

			if _, dup := seen[resolved]; dup {
				return
			}

			seen[resolved] = struct{}{}
			links = append(links, resolved)
		})

		pc.Links = links

		return nil
	}
}

// markdownLinkRE matches Markdown inline links `[text](target)` for the
// optional Markdown link-extract pass (§4.3 "Pipeline composition").
var markdownLinkRE = regexp.MustCompile(`\]\(([^)\s]+)\)`)

// LinkExtractMarkdownStep collects link targets from Markdown inline-link
// syntax, resolved against pc.Source, deduplicated (§4.3 pipeline table).
func LinkExtractMarkdownStep() Step {
	return func(_ context.Context, pc *core.ProcessingContext) error {
		base, err := url.Parse(pc.Source)
		if err != nil {
			return err
		}

		seen := make(map[string]struct{})
		var links []string

		for _, m := range markdownLinkRE.FindAllStringSubmatch(string(pc.Content), -1) {
			target := m[1]

			resolved, ok := resolveLink(base, target)
			if !ok {
				continue
			}

			if _, dup := seen[resolved]; dup {
				continue
			}

			seen[resolved] = struct{}{}
			links = append(links, resolved)
		}

		pc.Links = links

		return nil
	}
}

func resolveLink(base *url.URL, href string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	resolved := base.ResolveReference(u)
	if !allowedLinkSchemes[resolved.Scheme] {
		return "", false
	}

	return resolved.String(), true
}
