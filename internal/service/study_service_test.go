package service

import (
	"strings"
	"testing"
	"time"

	"ai-learning-be/internal/constant"
	"ai-learning-be/internal/dto"
	"ai-learning-be/internal/entity"
	"ai-learning-be/internal/pkg/apperr"
	"ai-learning-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStudyFixture(llmResponse string) (*studyService, *fakeChunkRepository, *memory.AnswerRepository, *fakeLLM) {
	chunkRepo := newFakeChunkRepository()
	answerRepo := memory.NewAnswerRepository(time.Minute)
	model := &fakeLLM{response: llmResponse}

	svc := NewStudyService(chunkRepo, answerRepo, model, noopLogger{}).(*studyService)
	return svc, chunkRepo, answerRepo, model
}

func seedSession(repo *fakeChunkRepository, sessionId string, contents ...string) {
	for i, content := range contents {
		repo.chunks[sessionId] = append(repo.chunks[sessionId], &entity.DocumentChunk{
			Id:         uuid.New(),
			SessionId:  sessionId,
			Content:    content,
			ChunkIndex: i,
		})
	}
}

func TestGenerateFlashcards(t *testing.T) {
	svc, chunkRepo, _, model := newStudyFixture(`[
		{"front": "What is spaced repetition?", "back": "Reviewing at increasing intervals."},
		{"front": "What is retrieval practice?", "back": "Recalling from memory instead of rereading."}
	]`)
	seedSession(chunkRepo, "session-1", "Spaced repetition basics.", "Retrieval practice basics.")

	resp, err := svc.GenerateFlashcards(t.Context(), &dto.GenerateFlashcardsRequest{SessionId: "session-1"})
	require.NoError(t, err)

	require.Len(t, resp.Flashcards, 2)
	assert.Equal(t, "What is spaced repetition?", resp.Flashcards[0].Front)

	// The default count and the session content both reach the prompt.
	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "generate exactly 10 flashcards")
	assert.Contains(t, model.prompts[0], "Spaced repetition basics.")
	assert.Equal(t, float64(0), model.lastOptions.Temperature)
	assert.Equal(t, constant.FlashcardMaxTokens, model.lastOptions.MaxTokens)
}

func TestGenerateFlashcardsDropsIncompleteItems(t *testing.T) {
	svc, chunkRepo, _, _ := newStudyFixture(`[
		{"front": "Complete card", "back": "Has both sides."},
		{"front": "Missing back"},
		{"back": "Missing front"},
		{"front": "  ", "back": "Blank front"}
	]`)
	seedSession(chunkRepo, "session-1", "Some content.")

	resp, err := svc.GenerateFlashcards(t.Context(), &dto.GenerateFlashcardsRequest{SessionId: "session-1"})
	require.NoError(t, err)

	require.Len(t, resp.Flashcards, 1)
	assert.Equal(t, "Complete card", resp.Flashcards[0].Front)
}

func TestGenerateFlashcardsEmptySessionIsNotFound(t *testing.T) {
	svc, _, _, _ := newStudyFixture(`[]`)

	_, err := svc.GenerateFlashcards(t.Context(), &dto.GenerateFlashcardsRequest{SessionId: "missing"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestGenerateFlashcardsMalformedOutput(t *testing.T) {
	svc, chunkRepo, _, _ := newStudyFixture(`I cannot produce JSON today, sorry.`)
	seedSession(chunkRepo, "session-1", "Some content.")

	_, err := svc.GenerateFlashcards(t.Context(), &dto.GenerateFlashcardsRequest{SessionId: "session-1"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindMalformedOutput, apperr.KindOf(err))
}

func TestGenerateFlashcardsUpstreamFailure(t *testing.T) {
	svc, chunkRepo, _, model := newStudyFixture("")
	model.failWith = errBoom
	seedSession(chunkRepo, "session-1", "Some content.")

	_, err := svc.GenerateFlashcards(t.Context(), &dto.GenerateFlashcardsRequest{SessionId: "session-1"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
}

func TestGenerateFlashcardsTruncatesLongContext(t *testing.T) {
	svc, chunkRepo, _, model := newStudyFixture(`[{"front": "f", "back": "b"}]`)
	seedSession(chunkRepo, "session-1", strings.Repeat("a", constant.MaxContentChars+5000))

	_, err := svc.GenerateFlashcards(t.Context(), &dto.GenerateFlashcardsRequest{SessionId: "session-1"})
	require.NoError(t, err)

	require.Len(t, model.prompts, 1)
	// Prompt template plus at most MaxContentChars of content.
	assert.Less(t, len(model.prompts[0]), constant.MaxContentChars+len(constant.FlashcardPromptTemplate)+10)
}

func TestGenerateQuizConcealsAnswers(t *testing.T) {
	svc, chunkRepo, answerRepo, _ := newStudyFixture(`[
		{"question": "What gas do plants emit?", "options": ["CO2", "Oxygen", "Nitrogen", "Helium"], "correct_index": 1, "explanation": "Photosynthesis releases oxygen."}
	]`)
	seedSession(chunkRepo, "session-1", "Plants emit oxygen during photosynthesis.")

	resp, err := svc.GenerateQuiz(t.Context(), &dto.GenerateQuizRequest{SessionId: "session-1"})
	require.NoError(t, err)

	require.Len(t, resp.Questions, 1)
	q := resp.Questions[0]
	assert.Equal(t, "What gas do plants emit?", q.Question)
	assert.Len(t, q.Options, 4)
	assert.Empty(t, q.Explanation)

	// The answer key lives in the cache, never in the response.
	answer, found := answerRepo.Get("session-1", 0)
	require.True(t, found)
	assert.Equal(t, 1, answer.CorrectIndex)
	assert.Equal(t, "Photosynthesis releases oxygen.", answer.Explanation)
}

func TestGenerateQuizCoercesMissingFields(t *testing.T) {
	svc, chunkRepo, answerRepo, _ := newStudyFixture(`[
		{"question": "Q1", "options": ["a", "b", "c", "d"]},
		{"question": "Q2", "options": ["a", "b"], "correct_index": 7},
		{"options": ["a", "b"]}
	]`)
	seedSession(chunkRepo, "session-1", "Some content.")

	resp, err := svc.GenerateQuiz(t.Context(), &dto.GenerateQuizRequest{SessionId: "session-1"})
	require.NoError(t, err)

	// The question without text is dropped, the rest are coerced and keep
	// their relative order so cached answers line up by index.
	require.Len(t, resp.Questions, 2)
	assert.Equal(t, "Q1", resp.Questions[0].Question)
	assert.Equal(t, "Q2", resp.Questions[1].Question)

	answer, found := answerRepo.Get("session-1", 0)
	require.True(t, found)
	assert.Equal(t, 0, answer.CorrectIndex)
	assert.Equal(t, "", answer.Explanation)

	// An out of range correct_index falls back to 0.
	answer, found = answerRepo.Get("session-1", 1)
	require.True(t, found)
	assert.Equal(t, 0, answer.CorrectIndex)
}

func TestGenerateQuizCustomCount(t *testing.T) {
	svc, chunkRepo, _, model := newStudyFixture(`[{"question": "Q", "options": ["a", "b", "c", "d"], "correct_index": 0, "explanation": "e"}]`)
	seedSession(chunkRepo, "session-1", "Some content.")

	_, err := svc.GenerateQuiz(t.Context(), &dto.GenerateQuizRequest{SessionId: "session-1", Count: 8})
	require.NoError(t, err)

	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "generate exactly 8 multiple-choice questions")
}

func TestCheckAnswer(t *testing.T) {
	svc, _, answerRepo, _ := newStudyFixture("")
	answerRepo.Save("session-1", []entity.QuizAnswer{
		{CorrectIndex: 2, Explanation: "Because of conservation of energy."},
	})

	zero, two := 0, 2

	resp, err := svc.CheckAnswer(t.Context(), &dto.CheckAnswerRequest{
		SessionId:     "session-1",
		QuestionIndex: &zero,
		SelectedIndex: &two,
	})
	require.NoError(t, err)
	assert.True(t, resp.Correct)
	assert.Equal(t, 2, resp.CorrectIndex)
	assert.Equal(t, "Because of conservation of energy.", resp.Explanation)

	resp, err = svc.CheckAnswer(t.Context(), &dto.CheckAnswerRequest{
		SessionId:     "session-1",
		QuestionIndex: &zero,
		SelectedIndex: &zero,
	})
	require.NoError(t, err)
	assert.False(t, resp.Correct)
	assert.Equal(t, 2, resp.CorrectIndex)
}

func TestCheckAnswerMissingKey(t *testing.T) {
	svc, _, _, _ := newStudyFixture("")

	zero := 0
	_, err := svc.CheckAnswer(t.Context(), &dto.CheckAnswerRequest{
		SessionId:     "never-quizzed",
		QuestionIndex: &zero,
		SelectedIndex: &zero,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindAnswerNotFound, apperr.KindOf(err))
}
