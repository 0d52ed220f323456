// Package config reads client settings from the environment. main loads a
// .env file first, so a checked-out workspace works without exporting
// anything.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

type Config struct {
	// APIBaseURL is the root of the remote e-leave service.
	APIBaseURL string
	// StateDir holds the file-backed local storage (draft + credentials).
	StateDir string
	// StorageBackend selects where local storage lives: file or redis.
	StorageBackend string
	RedisAddr      string
	// AutosaveDelay is the debounce window for draft writes.
	AutosaveDelay time.Duration
}

func Load() Config {
	return Config{
		APIBaseURL:     getenv("ELEAVE_API_URL", "http://localhost:8000"),
		StateDir:       getenv("ELEAVE_STATE_DIR", defaultStateDir()),
		StorageBackend: getenv("ELEAVE_STORAGE_BACKEND", BackendFile),
		RedisAddr:      getenv("ELEAVE_REDIS_ADDR", "localhost:6379"),
		AutosaveDelay:  time.Duration(getenvInt("ELEAVE_AUTOSAVE_DELAY_MS", 500)) * time.Millisecond,
	}
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "eleave")
	}
	return ".eleave"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
