package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type CatalogConfig struct {
	HTTPPort        string
	DBPath          string
	RedisAddr       string
	CacheTTL        time.Duration
	RateLimit       int
	RateWindow      time.Duration
	LogLevel        slog.Level
	ShutdownTimeout time.Duration
}

type TaskListConfig struct {
	HTTPPort        string
	LogLevel        slog.Level
	ShutdownTimeout time.Duration
}

func NewCatalogConfig() *CatalogConfig {
	return &CatalogConfig{
		HTTPPort:        getEnv("CATALOG_HTTP_PORT", "8000"),
		DBPath:          getEnv("CATALOG_DB_PATH", "./test.db"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		CacheTTL:        getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		RateLimit:       getEnvInt("CATALOG_RATE_LIMIT", 0),
		RateWindow:      getEnvDuration("CATALOG_RATE_WINDOW", time.Minute),
		LogLevel:        getEnvLevel("LOG_LEVEL", slog.LevelInfo),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func NewTaskListConfig() *TaskListConfig {
	return &TaskListConfig{
		HTTPPort:        getEnv("TASKS_HTTP_PORT", "8001"),
		LogLevel:        getEnvLevel("LOG_LEVEL", slog.LevelInfo),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("Invalid integer in environment, using default", "key", key, "value", value)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("Invalid duration in environment, using default", "key", key, "value", value)
		return fallback
	}
	return d
}

func getEnvLevel(key string, fallback slog.Level) slog.Level {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		slog.Warn("Invalid log level in environment, using default", "key", key, "value", value)
		return fallback
	}
	return level
}
