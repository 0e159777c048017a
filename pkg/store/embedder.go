package store

import "context"

// Embedder is the narrow capability the store needs from an embedding
// client: turn text into a vector and report the model's native dimension
// (§4.6 "Fixed-dimension wrapper"). Concrete adapters live in pkg/embed.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}
