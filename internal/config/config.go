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

	// BackendBaseURL is the root of the remote gamification API that owns
	// all business logic, scoring, and persistence.
	BackendBaseURL string
	// BackendTimeout bounds every round trip to the remote backend.
	BackendTimeout time.Duration

	// SessionSecret signs the client session cookie.
	SessionSecret string
	// SessionTTL is the Redis safety-net expiry for session records. The
	// records are otherwise kept until an explicit clear.
	SessionTTL time.Duration

	MaxUploadBytes int64
	// JigsawGridSize is the default N for the N×N puzzle split.
	JigsawGridSize int
	// GameURL is the participant-facing URL encoded into generated QR codes
	// when no explicit text is supplied.
	GameURL string

	// AllowedOrigins controls HTTP CORS and WebSocket origin validation.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "pretty"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
		BackendBaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8000"),
		BackendTimeout: time.Duration(getEnvInt("BACKEND_TIMEOUT_SECONDS", 15)) * time.Second,
		SessionSecret:  getEnv("SESSION_SECRET", "change-this-to-a-secure-random-string"),
		SessionTTL:     time.Duration(getEnvInt("SESSION_TTL_HOURS", 72)) * time.Hour,
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_SIZE_MB", 10)) * 1024 * 1024,
		JigsawGridSize: getEnvInt("JIGSAW_GRID_SIZE", 4),
		GameURL:        getEnv("GAME_URL", "https://play.nbccgames.com"),
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
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
