package main

import (
	"context"

	"bvox-ledger-go/internal/common"
	"bvox-ledger-go/internal/config"

	"go.uber.org/zap"
)

// Prepares the storage backend so the server starts against a known-good
// data directory. Optionally seeds a few demo users when
// CREATE_DEMO_USERS is set.
func main() {
	logger, cleanup := common.InitializeLogger()
	defer cleanup()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ledgerSvc, err := common.InitializeLedger(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize ledger", zap.Error(err))
	}
	defer ledgerSvc.Close()

	ctx := context.Background()

	if cfg.Storage.CreateDemoUsers {
		if err := common.SeedDemoUsers(ctx, ledgerSvc); err != nil {
			logger.Fatal("Failed to seed demo users", zap.Error(err))
		}
	}

	users, err := ledgerSvc.ListUsers(ctx)
	if err != nil {
		logger.Fatal("Storage verification failed", zap.Error(err))
	}

	logger.Info("Storage initialized",
		zap.String("backend", cfg.Storage.Backend),
		zap.Int("users", len(users)))
}
