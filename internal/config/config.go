package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	SessionEventsTopic string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	OpenAI   string
	RapidAPI string // transcript API access
}

type AIConfig struct {
	BaseURL            string // OpenAI-compatible override, e.g. https://openrouter.ai/api/v1
	ChatModel          string
	EmbeddingModel     string
	EmbeddingDimension int

	// Chat retrieval knobs. The threshold is deliberately configurable:
	// short/noisy transcripts need a permissive floor (0.1) while clean
	// documents can afford a stricter one.
	ChatTopK          int
	ChatThreshold     float64
	AnswerCacheTTLMin int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			SessionEventsTopic: getEnv("SESSION_EVENTS_TOPIC", "SESSION_ACTIVITY"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			OpenAI:   getEnv("OPENAI_API_KEY", ""),
			RapidAPI: getEnv("RAPIDAPI_KEY", ""),
		},
		Ai: AIConfig{
			BaseURL:            getEnv("OPENAI_BASE_URL", ""),
			ChatModel:          getEnv("CHAT_MODEL", "gpt-4o-mini"),
			EmbeddingModel:     getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			EmbeddingDimension: getEnvAsInt("EMBEDDING_DIMENSION", 1536),
			ChatTopK:           getEnvAsInt("CHAT_RETRIEVAL_TOP_K", 5),
			ChatThreshold:      getEnvAsFloat("CHAT_RETRIEVAL_THRESHOLD", 0.1),
			AnswerCacheTTLMin:  getEnvAsInt("ANSWER_CACHE_TTL_MINUTES", 60),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
