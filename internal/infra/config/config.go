package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/joho/godotenv"
)

const (
	DefaultEndpoint    = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultRetryPeriod = 600 * time.Second
	DefaultLogFile     = "homework_bot.log"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken string
	TelegramToken  string
	TelegramChatID string

	Endpoint     string
	RetryPeriod  time.Duration
	PollSchedule string // optional cron expression, overrides RetryPeriod
	LogLevel     string
	LogFile      string
	Environment  string
}

// Load reads configuration from environment variables and .env file (if present).
// Credentials are not checked here; see CheckTokens.
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{
		PracticumToken: os.Getenv("PRACTICUM_TOKEN"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatID: os.Getenv("TELEGRAM_CHAT_ID"),
		Endpoint:       getEnv("PRACTICUM_ENDPOINT", DefaultEndpoint),
		PollSchedule:   strings.TrimSpace(os.Getenv("POLL_SCHEDULE")),
		LogFile:        getEnv("LOG_FILE", DefaultLogFile),
	}

	cfg.RetryPeriod = DefaultRetryPeriod
	if raw := os.Getenv("RETRY_PERIOD"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RETRY_PERIOD: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("invalid RETRY_PERIOD: must be positive, got %s", d)
		}
		cfg.RetryPeriod = d
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	return cfg, nil
}

// CheckTokens verifies that every credential needed to run is present.
func (c *AppConfig) CheckTokens() error {
	var missing []string
	if c.PracticumToken == "" {
		missing = append(missing, "PRACTICUM_TOKEN")
	}
	if c.TelegramToken == "" {
		missing = append(missing, "TELEGRAM_TOKEN")
	}
	if c.TelegramChatID == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if len(missing) > 0 {
		return &homework.Error{
			Kind: homework.KindConfiguration,
			Op:   "CheckTokens",
			Err:  fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", ")),
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
