package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Env       string
	LogLevel  string
	LogFormat string

	// Redis, for the asynq worker
	RedisAddr         string
	WorkerConcurrency int
}

// Load reads the configuration from the environment, after loading a .env
// file from the working directory if there is one.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Env:               getEnv("ENV", "production"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		WorkerConcurrency: getEnvAsInt("WORKER_CONCURRENCY", 2),
	}

	// REDIS_ADDR wins over REDIS_URL
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = parseRedisAddr(getEnv("REDIS_URL", "redis://localhost:6379"))
	}
	if cfg.WorkerConcurrency < 1 {
		cfg.WorkerConcurrency = 1
	}

	return cfg
}

// SetupLogger configures the global zerolog logger.
func SetupLogger(cfg *Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Env == "development" && cfg.LogFormat == "pretty" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

// parseRedisAddr extracts host:port from a Redis URL.
// Supports: redis://host:port, rediss://host:port/0, host:port, host
func parseRedisAddr(redisURL string) string {
	addr := strings.TrimPrefix(redisURL, "redis://")
	addr = strings.TrimPrefix(addr, "rediss://")

	if i := strings.Index(addr, "/"); i >= 0 {
		addr = addr[:i]
	}
	if i := strings.LastIndex(addr, "@"); i >= 0 {
		addr = addr[i+1:]
	}

	if !strings.Contains(addr, ":") {
		addr = addr + ":6379"
	}
	return addr
}
