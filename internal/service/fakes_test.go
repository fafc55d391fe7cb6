package service

import (
	"context"
	"errors"
	"fmt"

	"ai-learning-be/internal/entity"
	"ai-learning-be/internal/repository/contract"
	"ai-learning-be/pkg/llm"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

// fakeChunkRepository keeps chunks in a per-session map and records the call
// order so tests can assert delete-before-insert.
type fakeChunkRepository struct {
	chunks    map[string][]*entity.DocumentChunk
	calls     []string
	searchHit []*contract.ScoredDocumentChunk
	failWith  error
}

func newFakeChunkRepository() *fakeChunkRepository {
	return &fakeChunkRepository{chunks: map[string][]*entity.DocumentChunk{}}
}

func (r *fakeChunkRepository) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	r.calls = append(r.calls, "create")
	if r.failWith != nil {
		return r.failWith
	}
	if len(chunks) == 0 {
		return nil
	}
	sessionId := chunks[0].SessionId
	r.chunks[sessionId] = append(r.chunks[sessionId], chunks...)
	return nil
}

func (r *fakeChunkRepository) DeleteBySessionId(ctx context.Context, sessionId string) error {
	r.calls = append(r.calls, "delete")
	delete(r.chunks, sessionId)
	return nil
}

func (r *fakeChunkRepository) FindBySessionOrdered(ctx context.Context, sessionId string, limit int) ([]*entity.DocumentChunk, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	stored := r.chunks[sessionId]
	if limit > 0 && len(stored) > limit {
		stored = stored[:limit]
	}
	return stored, nil
}

func (r *fakeChunkRepository) CountBySessionId(ctx context.Context, sessionId string) (int64, error) {
	return int64(len(r.chunks[sessionId])), nil
}

func (r *fakeChunkRepository) SearchSimilarWithScore(ctx context.Context, sessionId string, embedding []float32, limit int, threshold float64) ([]*contract.ScoredDocumentChunk, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	return r.searchHit, nil
}

type fakeEmbeddingProvider struct {
	failWith error
}

func (p *fakeEmbeddingProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if p.failWith != nil {
		return nil, p.failWith
	}
	return []float32{float32(len(text)), 1}, nil
}

func (p *fakeEmbeddingProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if p.failWith != nil {
		return nil, p.failWith
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = []float32{float32(len(t)), float32(i)}
	}
	return out, nil
}

func (p *fakeEmbeddingProvider) Dimension() int { return 2 }

// fakeLLM returns a canned response for Generate and streams canned tokens
// for ChatStream, capturing the prompts it was given.
type fakeLLM struct {
	response     string
	streamTokens []string
	streamErr    error
	failWith     error

	prompts     []string
	lastHistory []llm.Message
	lastOptions llm.Options
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.lastHistory = history
	if f.failWith != nil {
		return "", f.failWith
	}
	return f.response, nil
}

func (f *fakeLLM) ChatStream(ctx context.Context, history []llm.Message, options ...llm.Option) (<-chan llm.StreamDelta, error) {
	f.lastHistory = history
	for _, opt := range options {
		opt(&f.lastOptions)
	}
	if f.failWith != nil {
		return nil, f.failWith
	}
	ch := make(chan llm.StreamDelta, len(f.streamTokens)+1)
	for _, tok := range f.streamTokens {
		ch <- llm.StreamDelta{Token: tok}
	}
	if f.streamErr != nil {
		ch <- llm.StreamDelta{Err: f.streamErr}
	}
	close(ch)
	return ch, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	for _, opt := range options {
		opt(&f.lastOptions)
	}
	if f.failWith != nil {
		return "", f.failWith
	}
	return f.response, nil
}

type fakeTranscriptExtractor struct {
	text     string
	failWith error
}

func (f *fakeTranscriptExtractor) Extract(ctx context.Context, url string) (string, error) {
	if f.failWith != nil {
		return "", f.failWith
	}
	return f.text, nil
}

type fakePdfExtractor struct {
	text     string
	failWith error
	gotData  []byte
}

func (f *fakePdfExtractor) Extract(data []byte) (string, error) {
	f.gotData = data
	if f.failWith != nil {
		return "", f.failWith
	}
	return f.text, nil
}

type fakePublisher struct {
	payloads [][]byte
	failWith error
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.payloads = append(f.payloads, payload)
	return nil
}

type fakeRetriever struct {
	contents []string
	failWith error
}

func (f *fakeRetriever) Retrieve(ctx context.Context, sessionId, query string) ([]string, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.contents, nil
}

var errBoom = errors.New("boom")

func longText(paragraphs int) string {
	text := ""
	for i := 0; i < paragraphs; i++ {
		text += fmt.Sprintf("Paragraph %d talks about spaced repetition and why retrieval practice beats rereading for long term recall of studied material.\n\n", i)
	}
	return text
}
