package embedding

import "context"

// Provider defines the interface for generating text embeddings.
// Implementations must return one vector per input, in input order.
type Provider interface {
	// Embed generates an embedding for a single text (query-time path).
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for many texts. Order is preserved;
	// a failure on any upstream batch fails the whole call with no partial
	// result.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension reports the vector dimensionality the provider produces.
	Dimension() int
}
