package models

import "time"

// Config represents the application configuration
type Config struct {
	Storage StorageConfig
	Server  ServerConfig
	Assets  AssetsFileConfig
}

// StorageConfig holds object-store backend settings
type StorageConfig struct {
	Backend         string // "file" or "sqlite"
	DataDir         string // file backend: directory of collection documents
	DatabasePath    string // sqlite backend: database file path
	CreateDemoUsers bool
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	ListenAddr      string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// AssetsFileConfig points at the supported-asset list
type AssetsFileConfig struct {
	File string
}
