package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported storage drivers.
const (
	DriverMongo    = "mongodb"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMemory   = "memory"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// Storage selects which backend the repository layer uses. When the
	// configured backend cannot be reached the server falls back to the
	// in-memory store.
	StorageDriver string
	MongoURI      string
	MongoDatabase string
	PostgresDSN   string
	MySQLDSN      string

	JWTSecret string
	JWTTTL    time.Duration

	RedisURL string

	// ExamSeedPath points at an optional .xlsx workbook used to seed
	// exams on startup.
	ExamSeedPath string
}

// LoadConfig reads configuration from the environment, with .env as an
// optional overlay for local development.
func LoadConfig() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      parseLogLevel(getEnv("LOG_LEVEL", "info")),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverMemory)),
		MongoURI:      getEnv("MONGODB_URI", ""),
		MongoDatabase: getEnv("MONGODB_DATABASE", "studyhall"),
		PostgresDSN:   getEnv("POSTGRES_DSN", ""),
		MySQLDSN:      getEnv("MYSQL_DSN", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTTTL:        getDurationEnv("JWT_TTL", 7*24*time.Hour),
		RedisURL:      getEnv("REDIS_URL", ""),
		ExamSeedPath:  getEnv("EXAM_SEED_PATH", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case DriverMongo, DriverPostgres, DriverMySQL, DriverMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.JWTSecret == "" {
		if c.Environment == "production" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		c.JWTSecret = "studyhall-dev-secret"
	}

	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// Bare numbers are treated as hours, e.g. JWT_TTL=168.
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Hour
	}
	return fallback
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
