package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is one embedded slice of a session's source document.
// Chunks are immutable once stored; a session is refreshed only by deleting
// all of its chunks and re-ingesting.
type DocumentChunk struct {
	Id         uuid.UUID
	SessionId  string
	Content    string
	Embedding  []float32
	SourceType string // "video" | "pdf"
	ChunkIndex int    // 0-based position within the source document
	CreatedAt  time.Time
}
