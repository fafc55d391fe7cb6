package mapper

import (
	"ai-learning-be/internal/entity"
	"ai-learning-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type DocumentChunkMapper struct{}

func NewDocumentChunkMapper() *DocumentChunkMapper {
	return &DocumentChunkMapper{}
}

func (m *DocumentChunkMapper) ToEntity(c *model.DocumentChunk) *entity.DocumentChunk {
	if c == nil {
		return nil
	}

	return &entity.DocumentChunk{
		Id:         c.Id,
		SessionId:  c.SessionId,
		Content:    c.Content,
		Embedding:  c.Embedding.Slice(),
		SourceType: c.SourceType,
		ChunkIndex: c.ChunkIndex,
		CreatedAt:  c.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToModel(c *entity.DocumentChunk) *model.DocumentChunk {
	if c == nil {
		return nil
	}

	return &model.DocumentChunk{
		Id:         c.Id,
		SessionId:  c.SessionId,
		Content:    c.Content,
		Embedding:  pgvector.NewVector(c.Embedding),
		SourceType: c.SourceType,
		ChunkIndex: c.ChunkIndex,
		CreatedAt:  c.CreatedAt,
	}
}
