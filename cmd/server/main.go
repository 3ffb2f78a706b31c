// File: cmd/server/main.go
package main

import (
	"context"
	"errors"
	"log" // Standard log for messages before/after zap is active
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"collab_hub_backend/internal/config"
	"collab_hub_backend/internal/platform/database"
	"collab_hub_backend/internal/platform/logger"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := runMigrate(); err != nil {
			log.Fatalf("FATAL: Migration failed: %v", err)
		}
		return
	}

	startServer()
}

// runMigrate applies the GORM schema and exits.
func runMigrate() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	appLogger, cleanupLogger, err := provideLogger(cfg)
	if err != nil {
		return err
	}
	defer cleanupLogger()

	db, cleanupDB, err := database.NewGORM(cfg, appLogger)
	if err != nil {
		return err
	}
	defer cleanupDB()

	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	appLogger.Info("Database schema migrated successfully.")
	return nil
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, cleanup, err := initializeServer(ctx, cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("ERROR: Server failed to start or crashed: %v", err)
			return
		}
	case <-ctx.Done():
		log.Println("INFO: Shutdown signal received. Shutting down server...")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
}

// provideLogger builds the application logger; the cleanup flushes it.
func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	appLogger, err := logger.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		// Sync fails harmlessly on stdout/stderr on some platforms.
		_ = appLogger.Sync()
	}
	return appLogger, cleanup, nil
}
