// ejournal/config/config.go

package config

import (
	"fmt"
	"os"
	"time"
)

// Config собирает все настройки приложения из переменных окружения.
// Никаких пакетных синглтонов: значения передаются явно туда, где нужны.
type Config struct {
	Addr         string
	DatabaseURL  string
	RedisAddr    string
	JWTKey       []byte
	TokenTTL     time.Duration
	GeminiAPIKey string
	SentryDSN    string
	Env          string // dev|prod
	LogLevel     string
}

// Load reads the configuration from the environment. DB_URL and JWT_SECRET
// are required; everything else has a sensible default or is optional.
func Load() (*Config, error) {
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("переменная окружения DB_URL не установлена")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("переменная окружения JWT_SECRET не установлена")
	}

	ttl := 24 * time.Hour
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("TOKEN_TTL: %w", err)
		}
		ttl = d
	}

	return &Config{
		Addr:         getenv("HTTP_ADDR", ":8080"),
		DatabaseURL:  dbURL,
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		JWTKey:       []byte(secret),
		TokenTTL:     ttl,
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		SentryDSN:    os.Getenv("SENTRY_DSN"),
		Env:          getenv("ENV", "dev"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
	}, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
