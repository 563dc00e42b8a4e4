package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"bvox-ledger-go/internal/models"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

func Load() (*models.Config, error) {
	requestTimeout, err := getEnvDuration("SERVER_REQUEST_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	backend := getEnvString("STORAGE_BACKEND", BackendFile)
	if backend != BackendFile && backend != BackendSQLite {
		return nil, fmt.Errorf("invalid STORAGE_BACKEND: %q (want %q or %q)", backend, BackendFile, BackendSQLite)
	}

	return &models.Config{
		Storage: models.StorageConfig{
			Backend:         backend,
			DataDir:         getEnvString("DATA_DIR", "data"),
			DatabasePath:    getEnvString("DATABASE_PATH", "ledger.db"),
			CreateDemoUsers: getEnvBool("CREATE_DEMO_USERS", false),
		},
		Server: models.ServerConfig{
			ListenAddr:      getEnvString("LISTEN_ADDR", ":8080"),
			RequestTimeout:  requestTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
		Assets: models.AssetsFileConfig{
			File: getEnvString("ASSETS_FILE", "assets.yaml"),
		},
	}, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
