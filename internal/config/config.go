package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Keys     APIKeys
	Ai       AIConfig
	Analysis AnalysisConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	LLMLogFilePath     string
	CorsAllowedOrigins string
}

type APIKeys struct {
	OpenAI string
}

type AIConfig struct {
	LLMProvider    string // "openai", "ollama" or "huggingface"
	LLMModel       string // e.g. "gpt-4o-mini", "llama3"
	OllamaBaseURL  string
	MaxReplyTokens int
}

// AnalysisConfig carries the pacing knobs for the scoring pipeline.
// Defaults are the observed working limits of the generation API.
type AnalysisConfig struct {
	BatchConcurrency    int           // simultaneous calls in the full-batch path
	CategoryConcurrency int           // simultaneous calls per single-message analysis
	SlicePause          time.Duration // pause between scheduler slices
	Timeout             time.Duration // wall-clock bound for the monolithic path
	RetryAttempts       int
	RetryInitialDelay   time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			LLMLogFilePath:     getEnv("LLM_LOG_FILE_PATH", "logs/llm_analysis.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Keys: APIKeys{
			OpenAI: getEnv("OPENAI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:    getEnv("LLM_PROVIDER", "openai"),
			LLMModel:       getEnv("LLM_MODEL", "gpt-4o-mini"),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			MaxReplyTokens: getEnvAsInt("LLM_MAX_REPLY_TOKENS", 1024),
		},
		Analysis: AnalysisConfig{
			BatchConcurrency:    getEnvAsInt("ANALYSIS_BATCH_CONCURRENCY", 3),
			CategoryConcurrency: getEnvAsInt("ANALYSIS_CATEGORY_CONCURRENCY", 2),
			SlicePause:          getEnvAsDuration("ANALYSIS_SLICE_PAUSE", 100*time.Millisecond),
			Timeout:             getEnvAsDuration("ANALYSIS_TIMEOUT", 25*time.Second),
			RetryAttempts:       getEnvAsInt("ANALYSIS_RETRY_ATTEMPTS", 3),
			RetryInitialDelay:   getEnvAsDuration("ANALYSIS_RETRY_INITIAL_DELAY", 1*time.Second),
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

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
