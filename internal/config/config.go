package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string
	RedisURL   string
	JWTSecret  string
	JWTExpiry  time.Duration

	// AI question generation (Groq / OpenAI-compatible chat completions).
	GroqAPIURL string
	GroqAPIKey string
	GroqModel  string
	AITimeout  time.Duration
	// AIRatePerMinute caps AI generation requests per client IP.
	AIRatePerMinute int

	// QuestionTime is the base countdown per question; ExtraTime is the
	// bonus granted by the extra-time lifeline.
	QuestionTime time.Duration
	ExtraTime    time.Duration
	// SessionIdleTTL is how long an untouched quiz session survives
	// before the reaper drops it.
	SessionIdleTTL time.Duration

	// AllowedOrigins controls HTTP CORS and WebSocket origin validation.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "pretty"),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:       getEnv("JWT_SECRET", "change-this-to-a-secure-random-string"),
		JWTExpiry:       time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		GroqAPIURL:      getEnv("GROQ_API_URL", "https://api.groq.com/openai/v1/chat/completions"),
		GroqAPIKey:      getEnv("GROQ_API_KEY", ""),
		GroqModel:       getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		AITimeout:       time.Duration(getEnvInt("AI_TIMEOUT_SECONDS", 60)) * time.Second,
		AIRatePerMinute: getEnvInt("AI_RATE_PER_MINUTE", 6),
		QuestionTime:    time.Duration(getEnvInt("QUESTION_TIME_SECONDS", 30)) * time.Second,
		ExtraTime:       time.Duration(getEnvInt("EXTRA_TIME_SECONDS", 15)) * time.Second,
		SessionIdleTTL:  time.Duration(getEnvInt("SESSION_IDLE_TTL_MINUTES", 60)) * time.Minute,
		AllowedOrigins:  parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
