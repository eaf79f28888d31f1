package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	BotToken string
	Debug    bool
	Storage  StorageConfig
	Database DatabaseConfig
	Quiz     QuizConfig
	Limits   LimitsConfig
}

// StorageConfig selects where the vocabulary document lives
type StorageConfig struct {
	Driver       string
	DataFile     string
	DocumentName string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// QuizConfig holds quiz session settings
type QuizConfig struct {
	SessionTTL      time.Duration
	CleanupInterval time.Duration
}

// LimitsConfig holds per-user rate limit settings
type LimitsConfig struct {
	RPS   float64
	Burst int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		Storage: StorageConfig{
			Driver:       getEnv("STORAGE_DRIVER", StorageFile),
			DataFile:     getEnv("DATA_FILE", "cards.json"),
			DocumentName: getEnv("DOCUMENT_NAME", "cards"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "flashcards"),
			User:     getEnv("DB_USER", "flashcards"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	var err error
	if cfg.Debug, err = getEnvBool("DEBUG", false); err != nil {
		return nil, err
	}
	if cfg.Quiz.SessionTTL, err = getEnvDuration("QUIZ_SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Quiz.CleanupInterval, err = getEnvDuration("QUIZ_CLEANUP_INTERVAL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.Limits.RPS, err = getEnvFloat("RATE_LIMIT_RPS", 2); err != nil {
		return nil, err
	}
	if cfg.Limits.Burst, err = getEnvInt("RATE_LIMIT_BURST", 5); err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	switch cfg.Storage.Driver {
	case StorageFile:
		if cfg.Storage.DataFile == "" {
			return nil, fmt.Errorf("DATA_FILE is required for the file storage driver")
		}
	case StoragePostgres:
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required for the postgres storage driver")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}

	if cfg.Quiz.SessionTTL <= 0 {
		return nil, fmt.Errorf("QUIZ_SESSION_TTL must be positive")
	}
	if cfg.Quiz.CleanupInterval <= 0 {
		return nil, fmt.Errorf("QUIZ_CLEANUP_INTERVAL must be positive")
	}
	if cfg.Limits.RPS <= 0 || cfg.Limits.Burst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
