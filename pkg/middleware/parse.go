package middleware

import (
	"context"
	"fmt"

	"github.com/ksysoev/docindex/pkg/core"
)

// ParseStep parses pc.Content as HTML into a queryable tree attached to
// pc.DOM (§4.3.2).
func ParseStep() Step {
	return func(_ context.Context, pc *core.ProcessingContext) error {
		dom, err := newGoqueryDOM(string(pc.Content))
		if err != nil {
			return fmt.Errorf("parse: %w", err)
		}

		pc.DOM = dom

		return nil
	}
}
