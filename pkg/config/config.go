package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	Port        int

	// open ai
	OpenAIKey            string
	OpenAIBaseURL        string
	OpenAIEmbeddingModel string
	OpenAIChatModel      string
	EmbeddingDimensions  int
	EmbeddingTimeoutSec  int
	ChatTimeoutSec       int

	// rag config
	ChunkSize    int
	ChunkOverlap int
	TopKResults  int

	// upload config
	UploadDir       string
	MaxUploadSizeMB int

	LogLevel string
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		Port:        getEnvInt("PORT", 3000),

		// OpenAI
		OpenAIKey:            getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:        getEnv("OPENAI_BASE_URL", ""),
		OpenAIEmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
		OpenAIChatModel:      getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingDimensions:  getEnvInt("EMBEDDING_DIMENSIONS", 1536),
		EmbeddingTimeoutSec:  getEnvInt("EMBEDDING_TIMEOUT_SECONDS", 30),
		ChatTimeoutSec:       getEnvInt("CHAT_TIMEOUT_SECONDS", 60),

		// RAG Config
		ChunkSize:    getEnvInt("CHUNK_SIZE", 1000),
		ChunkOverlap: getEnvInt("CHUNK_OVERLAP", 200),
		TopKResults:  getEnvInt("TOP_K_RESULTS", 5),

		// Uploads
		UploadDir:       getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSizeMB: getEnvInt("MAX_UPLOAD_SIZE_MB", 5),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate reports missing or inconsistent required settings.
// The server must not start without them.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.OpenAIKey == "" {
		return errors.New("OPENAI_API_KEY is required")
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return errors.New("CHUNK_OVERLAP must be smaller than CHUNK_SIZE")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
