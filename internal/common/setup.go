package common

import (
	"context"
	"log"
	"strings"

	"bvox-ledger-go/internal/config"
	"bvox-ledger-go/internal/ledger"
	"bvox-ledger-go/internal/models"
	"bvox-ledger-go/internal/store"
	"bvox-ledger-go/internal/store/filestore"
	"bvox-ledger-go/internal/store/sqlitestore"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists.
// Environment variables can also be set via shell export, docker, etc.
func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: no .env file loaded: %v\n", err)
	}
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// InitializeObjectStore opens the configured storage backend.
func InitializeObjectStore(cfg models.StorageConfig) (store.ObjectStore, error) {
	if cfg.Backend == config.BackendSQLite {
		return sqlitestore.New(cfg.DatabasePath)
	}
	return filestore.New(cfg.DataDir)
}

// InitializeLedger opens storage and builds the ledger service on top of it.
func InitializeLedger(cfg models.StorageConfig) (*ledger.Service, error) {
	os, err := InitializeObjectStore(cfg)
	if err != nil {
		return nil, err
	}
	return ledger.NewService(os), nil
}

// SeedDemoUsers inserts a few demo users when the directory is empty.
// Useful for local development against a fresh data dir.
func SeedDemoUsers(ctx context.Context, l *ledger.Service) error {
	existing, err := l.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		zap.L().Info("Skipping demo user creation, directory not empty",
			zap.Int("users", len(existing)))
		return nil
	}

	demo := []models.User{
		{Id: "demo-alice", Username: "Alice Johnson", Email: "alice.johnson@example.com"},
		{Id: "demo-bob", Username: "Bob Smith", Email: "bob.smith@example.com"},
		{Id: "demo-carol", Username: "Carol Williams", Email: "carol.williams@example.com"},
	}
	for _, user := range demo {
		if _, err := l.UpsertUser(ctx, user); err != nil {
			zap.L().Error("Failed to seed demo user", zap.String("username", user.Username), zap.Error(err))
			return err
		}
		zap.L().Info("Demo user created", zap.String("id", user.Id), zap.String("username", user.Username))
	}
	return nil
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
