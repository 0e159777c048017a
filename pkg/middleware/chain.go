// Package middleware implements the ordered content-processing chain that
// turns raw fetched bytes into clean Markdown with extracted links and
// metadata (§4.3).
package middleware

import (
	"context"
	"errors"

	"github.com/ksysoev/docindex/pkg/core"
)

// ErrHalt is returned by a Step to deliberately abort the chain instead of
// the default behavior of capturing the error and continuing (§4.3, §9).
var ErrHalt = errors.New("middleware: halt chain")

// Step is one middleware in the chain: `(context, next) -> ()` made explicit
// as a function that either mutates pc and returns nil (continue), or
// returns an error. A non-ErrHalt error is captured on pc.Errors and the
// chain advances; an ErrHalt-wrapped error stops the chain immediately (§9).
type Step func(ctx context.Context, pc *core.ProcessingContext) error

// Chain runs an ordered list of Steps against a ProcessingContext (§4.3).
type Chain struct {
	steps []Step
}

// NewChain builds a Chain over the given steps, run in order.
func NewChain(steps ...Step) *Chain {
	return &Chain{steps: steps}
}

// Run executes every step in order. A step error is captured on pc.Errors
// and processing continues, unless the error wraps ErrHalt, in which case
// Run returns immediately with that error.
func (c *Chain) Run(ctx context.Context, pc *core.ProcessingContext) error {
	for _, step := range c.steps {
		if err := step(ctx, pc); err != nil {
			if errors.Is(err, ErrHalt) {
				return err
			}

			pc.AppendError(err)
		}
	}

	return nil
}
