package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bvox-ledger-go/internal/api"
	"bvox-ledger-go/internal/common"
	"bvox-ledger-go/internal/config"
	"bvox-ledger-go/internal/server"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

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

	if cfg.Storage.CreateDemoUsers {
		if err := common.SeedDemoUsers(context.Background(), ledgerSvc); err != nil {
			logger.Warn("Failed to seed demo users", zap.Error(err))
		}
	}

	assets, err := common.LoadAssetSymbols(cfg.Assets.File)
	if err != nil {
		logger.Fatal("Failed to load asset configuration", zap.Error(err))
	}

	svc := api.NewLedgerService(ledgerSvc, assets)
	h := server.New(svc)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: r,
	}

	go func() {
		logger.Info("Starting ledger server",
			zap.String("addr", cfg.Server.ListenAddr),
			zap.String("backend", cfg.Storage.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}
