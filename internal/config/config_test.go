package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.StorageDriver != DriverMemory {
		t.Errorf("StorageDriver = %q, want %q", cfg.StorageDriver, DriverMemory)
	}
	if cfg.JWTTTL != 7*24*time.Hour {
		t.Errorf("JWTTTL = %v, want 168h", cfg.JWTTTL)
	}
	if cfg.JWTSecret == "" {
		t.Error("JWTSecret empty, want development fallback")
	}
}

func TestLoadConfigStorageDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MongoDB")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.StorageDriver != DriverMongo {
		t.Errorf("StorageDriver = %q, want %q", cfg.StorageDriver, DriverMongo)
	}
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "cassandra")
	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for unknown storage driver")
	}
}

func TestLoadConfigRequiresSecretInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")
	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for missing JWT_SECRET in production")
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"WARNING": slog.LevelWarn,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestJWTTTLBareHours(t *testing.T) {
	t.Setenv("JWT_TTL", "24")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Errorf("JWTTTL = %v, want 24h", cfg.JWTTTL)
	}
}
