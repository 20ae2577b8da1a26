// Package cli provides the initialization and output helpers behind the expy
// commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"

	"expy/internal/config"
	"expy/internal/log"
	"expy/internal/storage"
)

// LoadEnvFile loads a .env file for local development. With no path the
// default .env is tried and a missing file is ignored; an explicit path must
// exist.
func LoadEnvFile(path string) error {
	if path == "" {
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// LoadAndValidateConfig loads configuration from the environment, applies
// overrides and validates the result.
func LoadAndValidateConfig(overrides ...func(*config.Config)) (*config.Config, error) {
	cfg := config.Load()
	for _, o := range overrides {
		o(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger builds the application logger from cfg and makes it the
// slog default. debug forces the debug level.
func SetupLogger(cfg *config.Config, debug bool, out io.Writer) *log.Logger {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	if debug {
		level = slog.LevelDebug
	}

	lc := log.DefaultConfig()
	lc.Level = level
	lc.Format = log.Format(cfg.LogFormat)
	lc.Component = log.ComponentCLI
	if out != nil {
		lc.Output = out
	}
	logger := log.New(lc)
	log.SetDefault(logger)
	return logger
}

// NewRegistry returns the store registry the commands share.
func NewRegistry(cfg *config.Config, logger *log.Logger) *storage.Registry {
	return storage.NewRegistry(storage.Options{
		Logger:    logger,
		CacheSize: cfg.CacheSize,
		CacheTTL:  cfg.CacheTTL,
	})
}

// OpenStore opens the configured store through registry.
func OpenStore(ctx context.Context, registry *storage.Registry, cfg *config.Config, logger *log.Logger) (*storage.Store, error) {
	store, err := registry.Open(ctx, cfg.DBPath)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize transaction store", "error", err, log.FieldPath, cfg.DBPath)
		return nil, err
	}
	if cfg.IsMemory() {
		logger.WarnContext(ctx, "Using an in-memory database, transactions are lost on exit")
	}
	return store, nil
}
