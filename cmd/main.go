package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/voxprep/interview-server/adapters/llm"
	"github.com/voxprep/interview-server/adapters/session"
	"github.com/voxprep/interview-server/adapters/speech"
	"github.com/voxprep/interview-server/domain/repositories"
	"github.com/voxprep/interview-server/internal/api"
	"github.com/voxprep/interview-server/usecase"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load .env if present
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using process environment")
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Initialize the upstream provider client. Without an API key the server
	// runs on mock adapters so the HTTP surface stays usable in development.
	apiKey := os.Getenv("GEMINI_API_KEY")
	var languageModel repositories.LargeLanguageModel
	var synthesizer repositories.SpeechSynthesizer

	if apiKey != "" {
		client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			logger.Fatal("Failed to create Gemini client", zap.Error(err))
		}
		languageModel = llm.NewGeminiLLM(client, os.Getenv("GEMINI_MODEL"), logger)
		synthesizer = speech.NewGeminiSpeech(client, speech.NewGeminiSpeechConfigFromEnv(), logger)
	} else {
		logger.Warn("GEMINI_API_KEY not set, running with mock providers")
		languageModel = llm.NewMockLLM()
		synthesizer = speech.NewMockSpeech(logger)
	}

	// Initialize repositories and usecase services
	sessions := session.NewMemoryRepository()
	interviewService := usecase.NewInterviewService(languageModel, sessions, logger)
	speechService := usecase.NewSpeechService(synthesizer, logger)

	// Initialize API routes
	api.InitRoutes(e, interviewService, speechService, apiKey != "", logger)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Interview server started", zap.String("port", port))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
