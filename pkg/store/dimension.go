package store

import (
	"fmt"

	"github.com/ksysoev/docindex/pkg/core"
)

// CanonicalDimension is the store's compile-time vector width; changing it
// requires a full reindex (§6 "Persisted schema").
const CanonicalDimension = 1536

// dimensionPolicy enforces the fixed-dimension wrapper on every write and
// every query (§4.6 "Fixed-dimension wrapper").
type dimensionPolicy struct {
	d             int
	allowTruncate bool
}

// fit pads a shorter vector with zeros, truncates a longer one when
// allowTruncate is set, or rejects it with ErrDimension otherwise.
func (p dimensionPolicy) fit(vec []float32) ([]float32, error) {
	switch {
	case len(vec) == p.d:
		return vec, nil
	case len(vec) < p.d:
		out := make([]float32, p.d)
		copy(out, vec)

		return out, nil
	case p.allowTruncate:
		return vec[:p.d], nil
	default:
		return nil, fmt.Errorf("%w: model produced %d, store wants %d", core.ErrDimension, len(vec), p.d)
	}
}
