package config_test

import (
	"testing"
	"time"

	"github.com/caaaae/E-Leave/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ELEAVE_API_URL", "")
	t.Setenv("ELEAVE_STORAGE_BACKEND", "")
	t.Setenv("ELEAVE_AUTOSAVE_DELAY_MS", "")

	cfg := config.Load()
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, config.BackendFile, cfg.StorageBackend)
	assert.Equal(t, 500*time.Millisecond, cfg.AutosaveDelay)
	assert.NotEmpty(t, cfg.StateDir)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ELEAVE_API_URL", "https://leave.example.com")
	t.Setenv("ELEAVE_STORAGE_BACKEND", "redis")
	t.Setenv("ELEAVE_REDIS_ADDR", "redis:6379")
	t.Setenv("ELEAVE_AUTOSAVE_DELAY_MS", "250")

	cfg := config.Load()
	assert.Equal(t, "https://leave.example.com", cfg.APIBaseURL)
	assert.Equal(t, config.BackendRedis, cfg.StorageBackend)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 250*time.Millisecond, cfg.AutosaveDelay)
}

func TestBadDelayFallsBack(t *testing.T) {
	t.Setenv("ELEAVE_AUTOSAVE_DELAY_MS", "soon")
	assert.Equal(t, 500*time.Millisecond, config.Load().AutosaveDelay)

	t.Setenv("ELEAVE_AUTOSAVE_DELAY_MS", "-10")
	assert.Equal(t, 500*time.Millisecond, config.Load().AutosaveDelay)
}
