package splitter

// Options configures the greedy coalescer's size bounds (§4.5 "Greedy
// coalescer").
type Options struct {
	Min int
	Max int
}

// DefaultOptions mirrors the spec's default coalescing bounds.
var DefaultOptions = Options{Min: 500, Max: 1500}

func (o Options) withDefaults() Options {
	if o.Min <= 0 {
		o.Min = DefaultOptions.Min
	}

	if o.Max <= 0 {
		o.Max = DefaultOptions.Max
	}

	return o
}
