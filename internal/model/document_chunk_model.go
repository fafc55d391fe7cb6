package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type DocumentChunk struct {
	Id         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId  string          `gorm:"type:text;not null;index"`
	Content    string          `gorm:"type:text"`
	Embedding  pgvector.Vector `gorm:"type:vector(1536)"` // text-embedding-3-small dimensions
	SourceType string          `gorm:"type:text"`
	ChunkIndex int             `gorm:"default:0"` // 0-based index for ordering
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
