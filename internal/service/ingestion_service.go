package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"ai-learning-be/internal/constant"
	"ai-learning-be/internal/dto"
	"ai-learning-be/internal/entity"
	"ai-learning-be/internal/pkg/apperr"
	"ai-learning-be/internal/pkg/logger"
	"ai-learning-be/internal/repository/contract"
	"ai-learning-be/internal/repository/memory"
	"ai-learning-be/pkg/chunker"
	"ai-learning-be/pkg/embedding"
	"ai-learning-be/pkg/events"
	"ai-learning-be/pkg/extractor"

	"github.com/google/uuid"
)

// MaxPdfBytes caps decoded PDF uploads at 15MB.
const MaxPdfBytes = 15 * 1024 * 1024

const pdfDataURLPrefix = "base64,"

type IIngestionService interface {
	ProcessVideo(ctx context.Context, req *dto.ProcessVideoRequest) (*dto.ProcessDocumentResponse, error)
	ProcessPdf(ctx context.Context, req *dto.ProcessPdfRequest) (*dto.ProcessDocumentResponse, error)
}

type ingestionService struct {
	chunkRepository     contract.DocumentChunkRepository
	answerRepository    *memory.AnswerRepository
	embeddingProvider   embedding.Provider
	transcriptExtractor extractor.TranscriptExtractor
	pdfExtractor        extractor.PDFExtractor
	textChunker         *chunker.Chunker
	publisherService    IPublisherService
	log                 logger.ILogger
}

func NewIngestionService(
	chunkRepository contract.DocumentChunkRepository,
	answerRepository *memory.AnswerRepository,
	embeddingProvider embedding.Provider,
	transcriptExtractor extractor.TranscriptExtractor,
	pdfExtractor extractor.PDFExtractor,
	publisherService IPublisherService,
	log logger.ILogger,
) IIngestionService {
	return &ingestionService{
		chunkRepository:     chunkRepository,
		answerRepository:    answerRepository,
		embeddingProvider:   embeddingProvider,
		transcriptExtractor: transcriptExtractor,
		pdfExtractor:        pdfExtractor,
		textChunker:         chunker.New(),
		publisherService:    publisherService,
		log:                 log,
	}
}

func (s *ingestionService) ProcessVideo(ctx context.Context, req *dto.ProcessVideoRequest) (*dto.ProcessDocumentResponse, error) {
	text, err := s.transcriptExtractor.Extract(ctx, req.Url)
	if err != nil {
		return nil, err
	}

	return s.ingest(ctx, req.SessionId, constant.SourceTypeVideo, text)
}

func (s *ingestionService) ProcessPdf(ctx context.Context, req *dto.ProcessPdfRequest) (*dto.ProcessDocumentResponse, error) {
	data, err := decodePdfPayload(req.Base64Data)
	if err != nil {
		return nil, err
	}

	text, err := s.pdfExtractor.Extract(data)
	if err != nil {
		return nil, err
	}

	return s.ingest(ctx, req.SessionId, constant.SourceTypePdf, text)
}

// ingest replaces a session's content: existing chunks and any cached quiz
// answers are removed before the new chunks are embedded and stored.
func (s *ingestionService) ingest(ctx context.Context, sessionId, sourceType, text string) (*dto.ProcessDocumentResponse, error) {
	pieces := s.textChunker.Split(text)
	if len(pieces) == 0 {
		return nil, apperr.New(apperr.KindInsufficientContent, "extracted content is too short to process")
	}

	vectors, err := s.embeddingProvider.EmbedBatch(ctx, pieces)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "embed document chunks", err)
	}

	if err := s.chunkRepository.DeleteBySessionId(ctx, sessionId); err != nil {
		return nil, err
	}
	s.answerRepository.Delete(sessionId)

	now := time.Now()
	chunks := make([]*entity.DocumentChunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = &entity.DocumentChunk{
			Id:         uuid.New(),
			SessionId:  sessionId,
			Content:    piece,
			Embedding:  vectors[i],
			SourceType: sourceType,
			ChunkIndex: i,
			CreatedAt:  now,
		}
	}

	if err := s.chunkRepository.CreateBulk(ctx, chunks); err != nil {
		return nil, err
	}

	s.publishActivity(ctx, sessionId, sourceType, len(chunks))

	s.log.Info("ingestion", "session content ingested", map[string]interface{}{
		"session_id":  sessionId,
		"source_type": sourceType,
		"chunk_count": len(chunks),
	})

	return &dto.ProcessDocumentResponse{
		SessionId:  sessionId,
		ChunkCount: len(chunks),
		SourceType: sourceType,
	}, nil
}

func (s *ingestionService) publishActivity(ctx context.Context, sessionId, sourceType string, chunkCount int) {
	payload, err := json.Marshal(events.SessionActivity{
		SessionId:  sessionId,
		Action:     events.ActionIngested,
		SourceType: sourceType,
		ChunkCount: chunkCount,
	})
	if err != nil {
		s.log.Warn("ingestion", "failed to marshal session activity event", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return
	}

	// Activity events are advisory, a publish failure never fails ingestion.
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Warn("ingestion", "failed to publish session activity event", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}
}

func decodePdfPayload(raw string) ([]byte, error) {
	encoded := raw
	if idx := strings.Index(encoded, pdfDataURLPrefix); idx != -1 {
		encoded = encoded[idx+len(pdfDataURLPrefix):]
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "base64_data is not a valid base64 payload", err)
	}
	if len(data) == 0 {
		return nil, apperr.New(apperr.KindValidation, "base64_data is empty")
	}
	if len(data) > MaxPdfBytes {
		return nil, apperr.Newf(apperr.KindValidation, "pdf exceeds the %dMB limit", MaxPdfBytes/(1024*1024))
	}
	return data, nil
}
