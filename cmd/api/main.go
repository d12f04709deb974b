package main

import (
	"fmt"
	"os"
	"time"

	"docqa-api/internal/adapter/openai"
	"docqa-api/internal/adapter/repository/postgres"
	"docqa-api/internal/delivery/http/handler"
	"docqa-api/internal/usecase/document"
	"docqa-api/pkg/config"
	"docqa-api/pkg/database"
	"docqa-api/pkg/logger"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.LogLevel)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}

	// connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Infof("connected to database")

	// directory for transient upload files
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Fatalf("failed to create upload dir: %v", err)
	}

	// initialize openai clients
	embeddingClient := openai.NewEmbeddingClient(
		cfg.OpenAIKey,
		cfg.OpenAIBaseURL,
		cfg.OpenAIEmbeddingModel,
		cfg.EmbeddingDimensions,
		time.Duration(cfg.EmbeddingTimeoutSec)*time.Second,
	)
	chatClient := openai.NewChatClient(
		cfg.OpenAIKey,
		cfg.OpenAIBaseURL,
		cfg.OpenAIChatModel,
		time.Duration(cfg.ChatTimeoutSec)*time.Second,
	)

	// initialize repositories
	docRepo := postgres.NewDocumentRepository(db)
	chunkRepo := postgres.NewChunkRepository(db)

	// initialize usecase
	docUsecase := document.NewDocumentUsecase(
		docRepo,
		chunkRepo,
		embeddingClient,
		chatClient,
		cfg.ChunkSize,
		cfg.ChunkOverlap,
		cfg.TopKResults,
	)

	// initialize handlers
	docHandler := handler.NewDocumentHandler(docUsecase, cfg.UploadDir, cfg.MaxUploadSizeMB)
	slackHandler := handler.NewSlackHandler(docUsecase)

	// initialize fiber app; body limit leaves headroom over the file cap so
	// oversize uploads reach the handler's 413 instead of a connection reset
	app := fiber.New(fiber.Config{
		BodyLimit: (cfg.MaxUploadSizeMB + 1) * 1024 * 1024,
	})

	app.Use(fiberlog.New())
	app.Use(recover.New())

	api := app.Group("/api")
	api.Post("/upload", docHandler.Upload)
	api.Post("/ask", docHandler.Ask)
	api.Post("/slack/ask", slackHandler.Ask)

	api.Get("/documents", docHandler.List)
	api.Get("/documents/:id", docHandler.GetByID)
	api.Delete("/documents/:id", docHandler.Delete)

	logger.Infof("server starting on port %d", cfg.Port)
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}
