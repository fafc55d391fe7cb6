package contract

import (
	"context"

	"ai-learning-be/internal/entity"
)

// ScoredDocumentChunk pairs a retrieved chunk with its cosine similarity to
// the query embedding, in the range [-1, 1].
type ScoredDocumentChunk struct {
	Chunk      *entity.DocumentChunk
	Similarity float64
}

type DocumentChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	// DeleteBySessionId removes every chunk of a session. Deleting a session
	// that has no chunks is not an error.
	DeleteBySessionId(ctx context.Context, sessionId string) error
	// FindBySessionOrdered returns up to limit chunks in chunk_index order.
	FindBySessionOrdered(ctx context.Context, sessionId string, limit int) ([]*entity.DocumentChunk, error)
	CountBySessionId(ctx context.Context, sessionId string) (int64, error)
	// SearchSimilarWithScore returns the chunks most similar to the query
	// embedding, best first, keeping only those at or above threshold.
	SearchSimilarWithScore(ctx context.Context, sessionId string, embedding []float32, limit int, threshold float64) ([]*ScoredDocumentChunk, error)
}
