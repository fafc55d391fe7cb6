package bootstrap

import (
	"time"

	"ai-learning-be/internal/config"
	"ai-learning-be/internal/controller"
	"ai-learning-be/internal/pkg/logger"
	"ai-learning-be/internal/repository/implementation"
	"ai-learning-be/internal/repository/memory"
	"ai-learning-be/internal/service"
	"ai-learning-be/pkg/embedding"
	"ai-learning-be/pkg/extractor"
	openaillm "ai-learning-be/pkg/llm/openai"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	StudyController    controller.IStudyController
	ChatController     controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	embeddingProvider := embedding.NewOpenAIProvider(
		cfg.Keys.OpenAI,
		cfg.Ai.BaseURL,
		cfg.Ai.EmbeddingModel,
		cfg.Ai.EmbeddingDimension,
	)
	llmProvider := openaillm.NewProvider(
		cfg.Keys.OpenAI,
		cfg.Ai.BaseURL,
		cfg.Ai.ChatModel,
	)

	transcriptExtractor := extractor.NewYouTubeExtractor(cfg.Keys.RapidAPI)
	pdfExtractor := extractor.NewPDFTextExtractor()

	// 4. Repositories
	chunkRepo := implementation.NewDocumentChunkRepository(db)
	answerRepo := memory.NewAnswerRepository(time.Duration(cfg.Ai.AnswerCacheTTLMin) * time.Minute)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.SessionEventsTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.SessionEventsTopic, answerRepo, sysLogger)

	ingestionService := service.NewIngestionService(
		chunkRepo,
		answerRepo,
		embeddingProvider,
		transcriptExtractor,
		pdfExtractor,
		publisherService,
		sysLogger,
	)

	studyService := service.NewStudyService(chunkRepo, answerRepo, llmProvider, sysLogger)

	retriever := service.NewRetriever(embeddingProvider, chunkRepo, cfg.Ai.ChatTopK, cfg.Ai.ChatThreshold)
	chatService := service.NewChatService(retriever, llmProvider, sysLogger)

	// 6. Controllers
	return &Container{
		DocumentController: controller.NewDocumentController(ingestionService),
		StudyController:    controller.NewStudyController(studyService),
		ChatController:     controller.NewChatController(chatService),
		ConsumerService:    consumerService,
		Logger:             sysLogger,
	}
}
