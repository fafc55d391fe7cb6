package service

import (
	"context"
	"fmt"
	"strings"

	"ai-learning-be/internal/constant"
	"ai-learning-be/internal/dto"
	"ai-learning-be/internal/pkg/logger"
	"ai-learning-be/pkg/llm"
)

type IChatService interface {
	// StreamChat answers a grounded question as a token stream. Retrieval
	// and prompt assembly happen before the channel is returned, so callers
	// get an error instead of a dead stream when setup fails.
	StreamChat(ctx context.Context, req *dto.ChatRequest) (<-chan llm.StreamDelta, error)
}

type chatService struct {
	retriever   IRetriever
	llmProvider llm.LLMProvider
	log         logger.ILogger
}

func NewChatService(retriever IRetriever, llmProvider llm.LLMProvider, log logger.ILogger) IChatService {
	return &chatService{
		retriever:   retriever,
		llmProvider: llmProvider,
		log:         log,
	}
}

func (s *chatService) StreamChat(ctx context.Context, req *dto.ChatRequest) (<-chan llm.StreamDelta, error) {
	contents, err := s.retriever.Retrieve(ctx, req.SessionId, req.Message)
	if err != nil {
		return nil, err
	}

	contextBlock := constant.NoRelevantContentPlaceholder
	if len(contents) > 0 {
		contextBlock = strings.Join(contents, constant.ContextSeparator)
	}

	history := make([]llm.Message, 0, len(req.History)+2)
	history = append(history, llm.Message{
		Role:    llm.RoleSystem,
		Content: fmt.Sprintf(constant.ChatSystemPromptTemplate, contextBlock),
	})

	turns := req.History
	if len(turns) > constant.MaxHistoryTurns {
		turns = turns[len(turns)-constant.MaxHistoryTurns:]
	}
	for _, turn := range turns {
		history = append(history, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	history = append(history, llm.Message{Role: llm.RoleUser, Content: req.Message})

	s.log.Debug("chat", "streaming grounded answer", map[string]interface{}{
		"session_id":       req.SessionId,
		"retrieved_chunks": len(contents),
		"history_turns":    len(turns),
	})

	return s.llmProvider.ChatStream(ctx, history,
		llm.WithTemperature(constant.ChatTemperature),
		llm.WithMaxTokens(constant.ChatMaxTokens),
	)
}
