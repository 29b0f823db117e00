package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage backend selectors
const (
	StorageMemory = "memory"
	StorageSqlite = "sqlite"
	StorageRedis  = "redis"
)

// Config holds everything the server needs from the environment
type Config struct {
	Port        int
	BotToken    string
	WebAppURL   string
	WebhookURL  string
	StorageType string
	SqlitePath  string
	RedisURL    string
	StaticDir   string
}

// Load reads .env if present, then the process environment
func Load() (Config, error) {
	// Missing .env is fine, real deployments set env vars directly
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnvInt("PORT", 8000),
		BotToken:    os.Getenv("BOT_TOKEN"),
		WebAppURL:   os.Getenv("WEBAPP_URL"),
		WebhookURL:  os.Getenv("WEBHOOK_URL"),
		StorageType: getEnvOrDefault("STORAGE_TYPE", StorageSqlite),
		SqlitePath:  getEnvOrDefault("SQLITE_PATH", "data/perkyjump.db"),
		RedisURL:    getEnvOrDefault("REDIS_URL", "redis://localhost:6379"),
		StaticDir:   getEnvOrDefault("STATIC_DIR", "static"),
	}

	switch cfg.StorageType {
	case StorageMemory, StorageSqlite, StorageRedis:
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_TYPE %q", cfg.StorageType)
	}

	return cfg, nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
