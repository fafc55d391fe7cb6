package implementation

import (
	"context"

	"ai-learning-be/internal/entity"
	"ai-learning-be/internal/mapper"
	"ai-learning-be/internal/model"
	"ai-learning-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentChunkMapper
}

func NewDocumentChunkRepository(db *gorm.DB) contract.DocumentChunkRepository {
	return &DocumentChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentChunkMapper(),
	}
}

func (r *DocumentChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	models := make([]*model.DocumentChunk, len(chunks))
	for i, c := range chunks {
		models[i] = r.mapper.ToModel(c)
	}

	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *DocumentChunkRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId string) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.DocumentChunk{}).Error
}

func (r *DocumentChunkRepositoryImpl) FindBySessionOrdered(ctx context.Context, sessionId string, limit int) ([]*entity.DocumentChunk, error) {
	var models []*model.DocumentChunk
	query := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Order("chunk_index ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.DocumentChunk, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *DocumentChunkRepositoryImpl) CountBySessionId(ctx context.Context, sessionId string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.DocumentChunk{}).
		Where("session_id = ?", sessionId).
		Count(&count).Error
	return count, err
}

type scoredChunkRow struct {
	model.DocumentChunk
	Similarity float64
}

func (r *DocumentChunkRepositoryImpl) SearchSimilarWithScore(ctx context.Context, sessionId string, embedding []float32, limit int, threshold float64) ([]*contract.ScoredDocumentChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	queryVector := pgvector.NewVector(embedding)

	var rows []*scoredChunkRow
	// Cosine similarity is 1 - cosine distance (the <=> operator).
	err := r.db.WithContext(ctx).
		Model(&model.DocumentChunk{}).
		Select("document_chunks.*, 1 - (embedding <=> ?) AS similarity", queryVector).
		Where("session_id = ?", sessionId).
		Where("1 - (embedding <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]*contract.ScoredDocumentChunk, len(rows))
	for i, row := range rows {
		results[i] = &contract.ScoredDocumentChunk{
			Chunk:      r.mapper.ToEntity(&row.DocumentChunk),
			Similarity: row.Similarity,
		}
	}
	return results, nil
}
