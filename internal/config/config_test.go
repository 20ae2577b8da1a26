package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid file config",
			config: Config{
				DBPath:    "./data/expy.db",
				LogLevel:  "info",
				LogFormat: "text",
				CacheSize: 256,
				CacheTTL:  5 * time.Minute,
			},
			wantErr: false,
		},
		{
			name: "valid in-memory config with cache disabled",
			config: Config{
				DBPath:    MemoryDBPath,
				LogLevel:  "debug",
				LogFormat: "json",
				CacheSize: 0,
			},
			wantErr: false,
		},
		{
			name: "empty database path",
			config: Config{
				DBPath:    "",
				LogLevel:  "info",
				LogFormat: "text",
			},
			wantErr:     true,
			errorString: "database path cannot be empty",
		},
		{
			name: "invalid log level",
			config: Config{
				DBPath:    MemoryDBPath,
				LogLevel:  "loud",
				LogFormat: "text",
			},
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
		{
			name: "invalid log format",
			config: Config{
				DBPath:    MemoryDBPath,
				LogLevel:  "info",
				LogFormat: "xml",
			},
			wantErr:     true,
			errorString: "invalid log format 'xml': must be one of [text json]",
		},
		{
			name: "negative cache size",
			config: Config{
				DBPath:    MemoryDBPath,
				LogLevel:  "info",
				LogFormat: "text",
				CacheSize: -1,
			},
			wantErr:     true,
			errorString: "invalid cache size -1: must be at least 0",
		},
		{
			name: "cache size too large",
			config: Config{
				DBPath:    MemoryDBPath,
				LogLevel:  "info",
				LogFormat: "text",
				CacheSize: 200000,
			},
			wantErr:     true,
			errorString: "invalid cache size 200000: must be at most 100000",
		},
		{
			name: "negative cache ttl",
			config: Config{
				DBPath:    MemoryDBPath,
				LogLevel:  "info",
				LogFormat: "text",
				CacheTTL:  -time.Second,
			},
			wantErr:     true,
			errorString: "invalid cache ttl -1s: must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else {
				if err != nil {
					t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := Config{DBPath: "", LogLevel: "loud", LogFormat: "xml", CacheSize: -1}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if n := strings.Count(err.Error(), "\n- "); n != 4 {
		t.Fatalf("expected 4 aggregated problems, got %d: %v", n, err)
	}
}

func TestConfig_ValidateDirectoryIsFile(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	cfg := Config{DBPath: filepath.Join(blocker, "expy.db"), LogLevel: "info", LogFormat: "text"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when the database directory is a file")
	}
}

func TestLoad(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		for _, key := range []string{"EXPY_DB_PATH", "EXPY_LOG_LEVEL", "EXPY_LOG_FORMAT", "EXPY_CACHE_SIZE", "EXPY_CACHE_TTL"} {
			t.Setenv(key, "")
		}
		cfg := Load()

		if cfg.DBPath != "./data/expy.db" {
			t.Errorf("Load() DBPath = %v, want ./data/expy.db", cfg.DBPath)
		}
		if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
			t.Errorf("Load() log = %v/%v, want info/text", cfg.LogLevel, cfg.LogFormat)
		}
		if cfg.CacheSize != 256 {
			t.Errorf("Load() CacheSize = %v, want 256", cfg.CacheSize)
		}
		if cfg.CacheTTL != 5*time.Minute {
			t.Errorf("Load() CacheTTL = %v, want 5m", cfg.CacheTTL)
		}
		if cfg.IsMemory() {
			t.Error("default config must not be in-memory")
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("EXPY_DB_PATH", MemoryDBPath)
		t.Setenv("EXPY_LOG_LEVEL", "debug")
		t.Setenv("EXPY_LOG_FORMAT", "json")
		t.Setenv("EXPY_CACHE_SIZE", "16")
		t.Setenv("EXPY_CACHE_TTL", "45s")

		cfg := Load()

		if !cfg.IsMemory() {
			t.Errorf("Load() DBPath = %v, want %v", cfg.DBPath, MemoryDBPath)
		}
		if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
			t.Errorf("Load() log = %v/%v, want debug/json", cfg.LogLevel, cfg.LogFormat)
		}
		if cfg.CacheSize != 16 {
			t.Errorf("Load() CacheSize = %v, want 16", cfg.CacheSize)
		}
		if cfg.CacheTTL != 45*time.Second {
			t.Errorf("Load() CacheTTL = %v, want 45s", cfg.CacheTTL)
		}
	})

	t.Run("invalid environment variables use defaults", func(t *testing.T) {
		t.Setenv("EXPY_CACHE_SIZE", "invalid")
		t.Setenv("EXPY_CACHE_TTL", "invalid")

		cfg := Load()

		if cfg.CacheSize != 256 {
			t.Errorf("Load() CacheSize = %v, want 256 (default for invalid input)", cfg.CacheSize)
		}
		if cfg.CacheTTL != 5*time.Minute {
			t.Errorf("Load() CacheTTL = %v, want 5m (default for invalid input)", cfg.CacheTTL)
		}
	})
}
