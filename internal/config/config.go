package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken     string
	BotPassword  string
	LocalDBPath  string
	WordsFile    string
	ReminderHour int
	Database     DatabaseConfig
}

// DatabaseConfig holds remote database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		BotPassword: os.Getenv("BOT_PASSWORD"),
		LocalDBPath: getEnv("LOCAL_DB_PATH", "data/ieltslearn.db"),
		WordsFile:   os.Getenv("WORDS_FILE"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "ieltslearn"),
			User:     getEnv("DB_USER", "ieltslearn"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	hour, err := strconv.Atoi(getEnv("REMINDER_HOUR", "9"))
	if err != nil || hour < 0 || hour > 23 {
		return nil, fmt.Errorf("REMINDER_HOUR must be an hour between 0 and 23")
	}
	cfg.ReminderHour = hour

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.BotPassword == "" {
		return nil, fmt.Errorf("BOT_PASSWORD is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
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
