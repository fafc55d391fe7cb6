package service

import (
	"context"

	"ai-learning-be/internal/pkg/apperr"
	"ai-learning-be/internal/repository/contract"
	"ai-learning-be/pkg/embedding"
)

// IRetriever finds the chunks of a session most relevant to a query.
type IRetriever interface {
	Retrieve(ctx context.Context, sessionId, query string) ([]string, error)
}

type retriever struct {
	embeddingProvider embedding.Provider
	chunkRepository   contract.DocumentChunkRepository
	topK              int
	threshold         float64
}

func NewRetriever(
	embeddingProvider embedding.Provider,
	chunkRepository contract.DocumentChunkRepository,
	topK int,
	threshold float64,
) IRetriever {
	return &retriever{
		embeddingProvider: embeddingProvider,
		chunkRepository:   chunkRepository,
		topK:              topK,
		threshold:         threshold,
	}
}

func (r *retriever) Retrieve(ctx context.Context, sessionId, query string) ([]string, error) {
	queryEmbedding, err := r.embeddingProvider.Embed(ctx, query)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "embed query", err)
	}

	scored, err := r.chunkRepository.SearchSimilarWithScore(ctx, sessionId, queryEmbedding, r.topK, r.threshold)
	if err != nil {
		return nil, err
	}

	contents := make([]string, len(scored))
	for i, s := range scored {
		contents[i] = s.Chunk.Content
	}
	return contents, nil
}
