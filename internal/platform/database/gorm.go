// File: internal/platform/database/gorm.go
package database

import (
	"context"
	"fmt"
	"time"

	"collab_hub_backend/internal/config"

	_ "github.com/lib/pq" // registers the "postgres" database/sql driver for DB_DRIVER=postgres
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewGORM opens the process-wide database handle and applies the pool
// settings. A failed startup ping is logged, not returned. The returned
// cleanup closes the pool and is wired into the server shutdown path.
func NewGORM(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	dialector, err := newDialector(cfg)
	if err != nil {
		return nil, nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               newGORMLogger(cfg, logger),
		TranslateError:       true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	// Connections are opened on first use. An unreachable store is reported
	// here and by the health job, and requests fail with 503 until it is back.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Warn("Database is not reachable yet; continuing startup", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}

	if cfg.DBAutoMigrate {
		if err := AutoMigrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		logger.Info("Database schema migrated")
	}

	logger.Info("Database handle ready.", zap.String("driver", cfg.DBDriver))
	cleanup := func() {
		CloseGORMDB(db, logger)
	}
	return db, cleanup, nil
}

func newDialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverPgx, "":
		return postgres.Open(cfg.PostgresDSN()), nil
	case config.DriverPostgres:
		return postgres.New(postgres.Config{DriverName: "postgres", DSN: cfg.PostgresDSN()}), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DBSource), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

func newGORMLogger(cfg *config.Config, logger *zap.Logger) gormlogger.Interface {
	var level gormlogger.LogLevel
	switch cfg.LogLevel {
	case "silent", "fatal", "panic":
		level = gormlogger.Silent
	case "error":
		level = gormlogger.Error
	case "debug":
		level = gormlogger.Info // logs every statement
	default:
		level = gormlogger.Warn
	}

	return gormlogger.New(
		zap.NewStdLog(logger.Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// Ping checks that the store answers within the deadline carried by ctx.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// CloseGORMDB closes the GORM database connection.
func CloseGORMDB(db *gorm.DB, logger *zap.Logger) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Error getting underlying SQL DB for closing", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
		return
	}
	logger.Info("Database connection closed.")
}
