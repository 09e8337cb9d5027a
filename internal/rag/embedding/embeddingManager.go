package embedding

import "context"

// Embedder turns text into fixed-dimension vectors. Index-time and
// query-time calls must come from the same deployment-configured model so
// the vector spaces line up.
type Embedder interface {
	EmbedQuery(ctx context.Context, query string) ([]float32, error)
	EmbedBatch(ctx context.Context, chunks []string) ([][]float32, error)
}
