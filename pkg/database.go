package pkg

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/studyhall-app/studyhall-service/internal/config"
	"github.com/studyhall-app/studyhall-service/internal/repositories"
	"github.com/studyhall-app/studyhall-service/internal/repositories/gormstore"
	"github.com/studyhall-app/studyhall-service/internal/repositories/memory"
	"github.com/studyhall-app/studyhall-service/internal/repositories/mongostore"
)

// InitRepository opens the storage backend named by the configuration.
// Connection failures are not fatal: the server degrades to the
// in-memory store so it can still run without external services.
func InitRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) repositories.Repository {
	repo, err := openRepository(ctx, cfg)
	if err != nil {
		logger.Warn("storage backend unavailable, using in-memory store",
			"driver", cfg.StorageDriver, "error", err)
		return memory.NewRepository()
	}
	if cfg.StorageDriver != config.DriverMemory {
		logger.Info("connected to storage backend", "driver", cfg.StorageDriver)
	}
	return repo
}

func openRepository(ctx context.Context, cfg *config.Config) (repositories.Repository, error) {
	switch cfg.StorageDriver {
	case config.DriverMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGODB_URI is not set")
		}
		return mongostore.Open(ctx, cfg.MongoURI, cfg.MongoDatabase)

	case config.DriverPostgres, config.DriverMySQL:
		db, err := openGorm(cfg)
		if err != nil {
			return nil, err
		}
		return gormstore.NewRepository(db)

	case config.DriverMemory:
		return memory.NewRepository(), nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func openGorm(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	switch cfg.StorageDriver {
	case config.DriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("POSTGRES_DSN is not set")
		}
		return gorm.Open(postgres.Open(cfg.PostgresDSN), gormCfg)
	case config.DriverMySQL:
		if cfg.MySQLDSN == "" {
			return nil, fmt.Errorf("MYSQL_DSN is not set")
		}
		return gorm.Open(mysql.Open(cfg.MySQLDSN), gormCfg)
	default:
		return nil, fmt.Errorf("driver %q is not SQL-backed", cfg.StorageDriver)
	}
}
