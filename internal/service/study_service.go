package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ai-learning-be/internal/constant"
	"ai-learning-be/internal/dto"
	"ai-learning-be/internal/entity"
	"ai-learning-be/internal/pkg/apperr"
	"ai-learning-be/internal/pkg/logger"
	"ai-learning-be/internal/repository/contract"
	"ai-learning-be/internal/repository/memory"
	"ai-learning-be/pkg/llm"
)

type IStudyService interface {
	GenerateFlashcards(ctx context.Context, req *dto.GenerateFlashcardsRequest) (*dto.GenerateFlashcardsResponse, error)
	GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
	CheckAnswer(ctx context.Context, req *dto.CheckAnswerRequest) (*dto.CheckAnswerResponse, error)
}

type studyService struct {
	chunkRepository  contract.DocumentChunkRepository
	answerRepository *memory.AnswerRepository
	llmProvider      llm.LLMProvider
	log              logger.ILogger
}

func NewStudyService(
	chunkRepository contract.DocumentChunkRepository,
	answerRepository *memory.AnswerRepository,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
) IStudyService {
	return &studyService{
		chunkRepository:  chunkRepository,
		answerRepository: answerRepository,
		llmProvider:      llmProvider,
		log:              log,
	}
}

func (s *studyService) GenerateFlashcards(ctx context.Context, req *dto.GenerateFlashcardsRequest) (*dto.GenerateFlashcardsResponse, error) {
	count := req.Count
	if count <= 0 {
		count = constant.DefaultFlashcardCount
	}

	content, err := s.buildContext(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(constant.FlashcardPromptTemplate, count, content)
	raw, err := s.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0),
		llm.WithMaxTokens(constant.FlashcardMaxTokens),
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "flashcard generation failed", err)
	}

	items, err := llm.ExtractArray(raw)
	if err != nil {
		return nil, s.malformed("flashcards", req.SessionId, err)
	}

	flashcards := make([]dto.Flashcard, 0, len(items))
	for _, item := range items {
		front := strings.TrimSpace(toString(item["front"]))
		back := strings.TrimSpace(toString(item["back"]))
		if front == "" || back == "" {
			continue
		}
		flashcards = append(flashcards, dto.Flashcard{Front: front, Back: back})
	}

	if len(flashcards) == 0 {
		return nil, apperr.New(apperr.KindMalformedOutput, "model returned no usable flashcards")
	}

	return &dto.GenerateFlashcardsResponse{
		Flashcards: flashcards,
	}, nil
}

func (s *studyService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	count := req.Count
	if count <= 0 {
		count = constant.DefaultQuizCount
	}

	content, err := s.buildContext(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(constant.QuizPromptTemplate, count, content)
	raw, err := s.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0),
		llm.WithMaxTokens(constant.QuizMaxTokens),
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "quiz generation failed", err)
	}

	items, err := llm.ExtractArray(raw)
	if err != nil {
		return nil, s.malformed("quiz", req.SessionId, err)
	}

	questions := make([]dto.QuizQuestion, 0, len(items))
	answers := make([]entity.QuizAnswer, 0, len(items))
	for _, item := range items {
		question := strings.TrimSpace(toString(item["question"]))
		options := toStringSlice(item["options"])
		if question == "" || len(options) == 0 {
			continue
		}

		// Missing correct_index or explanation are coerced rather than
		// dropped so the question numbering stays dense.
		correctIndex := toInt(item["correct_index"])
		if correctIndex < 0 || correctIndex >= len(options) {
			correctIndex = 0
		}

		// Explanation ships blank; the real one comes back from check-answer.
		questions = append(questions, dto.QuizQuestion{
			Question:    question,
			Options:     options,
			Explanation: "",
		})
		answers = append(answers, entity.QuizAnswer{
			CorrectIndex: correctIndex,
			Explanation:  toString(item["explanation"]),
		})
	}

	if len(questions) == 0 {
		return nil, apperr.New(apperr.KindMalformedOutput, "model returned no usable quiz questions")
	}

	s.answerRepository.Save(req.SessionId, answers)

	return &dto.GenerateQuizResponse{
		Questions: questions,
	}, nil
}

func (s *studyService) CheckAnswer(ctx context.Context, req *dto.CheckAnswerRequest) (*dto.CheckAnswerResponse, error) {
	answer, found := s.answerRepository.Get(req.SessionId, *req.QuestionIndex)
	if !found {
		return nil, apperr.New(apperr.KindAnswerNotFound, "no quiz answers found for this session, generate a quiz first")
	}

	return &dto.CheckAnswerResponse{
		Correct:      *req.SelectedIndex == answer.CorrectIndex,
		CorrectIndex: answer.CorrectIndex,
		Explanation:  answer.Explanation,
	}, nil
}

// buildContext concatenates a session's chunks in document order, bounded by
// ContextChunkLimit and MaxContentChars.
func (s *studyService) buildContext(ctx context.Context, sessionId string) (string, error) {
	chunks, err := s.chunkRepository.FindBySessionOrdered(ctx, sessionId, constant.ContextChunkLimit)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		return "", apperr.New(apperr.KindNotFound, "no content found for this session, process a video or pdf first")
	}

	contents := make([]string, len(chunks))
	for i, c := range chunks {
		contents[i] = c.Content
	}

	content := strings.Join(contents, "\n\n")
	if len(content) > constant.MaxContentChars {
		content = content[:constant.MaxContentChars]
	}
	return content, nil
}

func (s *studyService) malformed(kind, sessionId string, err error) error {
	s.log.Error("study", "model returned unparseable output", map[string]interface{}{
		"generation": kind,
		"session_id": sessionId,
		"error":      err.Error(),
	})
	if errors.Is(err, llm.ErrMalformedOutput) {
		return apperr.Wrap(apperr.KindMalformedOutput, "model output could not be parsed", err)
	}
	return err
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}

func toInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed
		}
	}
	return 0
}

func toStringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil
		}
		out = append(out, s)
	}
	return out
}
