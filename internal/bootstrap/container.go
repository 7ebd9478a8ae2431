package bootstrap

import (
	"log"

	"ikigai-interview-be/internal/config"
	"ikigai-interview-be/internal/controller"
	"ikigai-interview-be/internal/pkg/logger"
	"ikigai-interview-be/internal/repository/memory"
	"ikigai-interview-be/internal/service"
	"ikigai-interview-be/pkg/llm/factory"
	"ikigai-interview-be/pkg/retry"
	"ikigai-interview-be/pkg/scoring"
)

type Container struct {
	InterviewController controller.IInterviewController

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	// The analysis pipeline is chatty; its trace goes to a separate file.
	analysisLogger := logger.NewIsolatedLogger(cfg.App.LLMLogFilePath)

	// 2. LLM Provider based on Config
	llmProvider, err := factory.NewProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3. In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// 4. Scoring Pipeline
	retryPolicy := retry.Policy{
		MaxAttempts:  cfg.Analysis.RetryAttempts,
		InitialDelay: cfg.Analysis.RetryInitialDelay,
	}
	scorer := scoring.NewScorer(llmProvider, retryPolicy)

	// 5. Services
	interviewService := service.NewInterviewService(
		sessionRepo,
		llmProvider,
		retryPolicy,
		cfg.Ai.MaxReplyTokens,
		sysLogger,
	)
	analysisService := service.NewAnalysisService(
		sessionRepo,
		scorer,
		cfg.Analysis,
		analysisLogger,
	)

	// 6. Controllers
	return &Container{
		InterviewController: controller.NewInterviewController(interviewService, analysisService),
		Logger:              sysLogger,
	}
}
