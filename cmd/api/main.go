// @title Quizoraa API
// @version 1.0
// @description AI quiz generation service.
// @host localhost:8080
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quizoraa/internal/adapter"
	"quizoraa/internal/adapter/embedding"
	"quizoraa/internal/adapter/llm"
	"quizoraa/internal/cache"
	"quizoraa/internal/config"
	"quizoraa/internal/database"
	"quizoraa/internal/handler"
	"quizoraa/internal/logger"
	"quizoraa/internal/middleware"
	"quizoraa/internal/repository"
	"quizoraa/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	// Initialize the Gemini client; it serves both generation and embeddings.
	geminiClient, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.Gemini.APIKey),
		googleai.WithDefaultModel(cfg.Gemini.GenerationModel),
		googleai.WithDefaultEmbeddingModel(cfg.Gemini.EmbeddingModel),
	)
	if err != nil {
		appLogger.Fatal("Failed to create Gemini client", zap.Error(err))
	}

	textGenerator, err := llm.NewGeminiTextGenerator(geminiClient, cfg.Gemini.GenerationTimeout)
	if err != nil {
		appLogger.Fatal("Failed to create text generator", zap.Error(err))
	}

	// Connect to database
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize Redis client and cache adapter
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	embeddingService, err := embedding.NewGeminiEmbeddingService(geminiClient, cacheAdapter, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create embedding service", zap.Error(err))
	}
	appLogger.Info("Gemini embedding service initialized")

	// Initialize repositories
	quizRepository := repository.NewQuizDatabaseAdapter(db)
	memoryRepository := repository.NewMemoryDatabaseAdapter(db)
	embeddingRepository := repository.NewEmbeddingDatabaseAdapter(db)
	feedbackRepository := repository.NewFeedbackDatabaseAdapter(db)
	logRepository := repository.NewGenerationLogDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize services
	enricher := service.NewContextEnricher(
		embeddingService,
		embeddingRepository,
		feedbackRepository,
		memoryRepository,
		textGenerator,
	)
	generationService := service.NewQuizGenerationService(
		quizRepository,
		memoryRepository,
		embeddingRepository,
		logRepository,
		textGenerator,
		embeddingService,
		enricher,
		txManager,
	)
	appLogger.Info("QuizGenerationService initialized")

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(generationService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	// API group
	apiGroup := app.Group("/api")
	apiGroup.Post("/quizzes/generate", quizHandler.GenerateQuiz)
	apiGroup.Get("/quizzes/:id", quizHandler.GetQuiz)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
