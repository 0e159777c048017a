package middleware

import (
	"context"
	"fmt"

	"github.com/ksysoev/docindex/pkg/core"
	"github.com/microcosm-cc/bluemonday"
)

// sanitizePolicy is a second line of defense after selector-based removal:
// it strips script/style/event-handler content that a blacklist selector
// might miss, the same bluemonday.UGCPolicy used for the teacher's markdown
// rendering sanitization.
var sanitizePolicy = bluemonday.UGCPolicy()

// defaultExcludeSelectors is the fixed blacklist of elements removed before
// serialization: navigation, script, style, ads, cookie banners, modals (§4.3.6).
var defaultExcludeSelectors = []string{
	"nav", "script", "style", "header", "footer", "aside",
	"[class*=\"cookie\"]", "[id*=\"cookie\"]",
	"[class*=\"advert\"]", "[class*=\"ad-\"]",
	"[class*=\"modal\"]", "[role=\"dialog\"]",
	"[class*=\"popup\"]",
}

// SanitizeStep removes elements matching the default blacklist union the
// caller-supplied exclude selectors, mutating the tree in place (§4.3.6).
func SanitizeStep() Step {
	return func(_ context.Context, pc *core.ProcessingContext) error {
		selectors := append(append([]string{}, defaultExcludeSelectors...), pc.Options.ExcludeSelectors...)

		for _, sel := range selectors {
			pc.DOM.Remove(sel)
		}

		html, err := pc.DOM.HTML()
		if err != nil {
			return fmt.Errorf("sanitize: %w", err)
		}

		sanitized := sanitizePolicy.Sanitize(html)

		dom, err := newGoqueryDOM(sanitized)
		if err != nil {
			return fmt.Errorf("sanitize: reparse: %w", err)
		}

		pc.DOM = dom

		return nil
	}
}
