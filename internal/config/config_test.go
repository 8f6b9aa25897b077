package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TELEGRAM_TOKEN", "BOT_OWNER_IDS", "LOG_LEVEL", "LOG_FORMAT", "STORE_BACKEND",
		"DATA_DIR", "MONGO_URI", "MONGO_DB_NAME", "TRANSLATE_ENDPOINT",
		"TRANSLATE_TIMEOUT_SECONDS", "CTE_TARGET_LANG", "WORKER_COUNT",
		"WORKER_QUEUE_SIZE", "METRICS_ADDR", "OPENCC_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreBackendFile, cfg.StoreBackend)
	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, DefaultTranslateURL, cfg.Translate.Endpoint)
	assert.Equal(t, 20*time.Second, cfg.Translate.Timeout)
	assert.Equal(t, "en", cfg.Translate.CTETarget)
	assert.Equal(t, DefaultWorkerCount, cfg.Worker.Count)
	assert.Empty(t, cfg.BotOwnerIDs)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Empty(t, cfg.OpenCCDir)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("BOT_OWNER_IDS", "123, 456")
	t.Setenv("TRANSLATE_TIMEOUT_SECONDS", "5")
	t.Setenv("CTE_TARGET_LANG", "JA")
	t.Setenv("WORKER_COUNT", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []int64{123, 456}, cfg.BotOwnerIDs)
	assert.True(t, cfg.IsOwner(456))
	assert.False(t, cfg.IsOwner(789))
	assert.Equal(t, 5*time.Second, cfg.Translate.Timeout)
	assert.Equal(t, "ja", cfg.Translate.CTETarget)
	assert.Equal(t, 2, cfg.Worker.Count)
}

func TestLoadOpenCCDir(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("OPENCC_DIR", dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.OpenCCDir)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing token", env: map[string]string{}},
		{name: "unknown backend", env: map[string]string{"TELEGRAM_TOKEN": "t", "STORE_BACKEND": "redis"}},
		{name: "mongo without uri", env: map[string]string{"TELEGRAM_TOKEN": "t", "STORE_BACKEND": "mongo"}},
		{name: "bad cte language", env: map[string]string{"TELEGRAM_TOKEN": "t", "CTE_TARGET_LANG": "not a tag"}},
		{name: "bad endpoint", env: map[string]string{"TELEGRAM_TOKEN": "t", "TRANSLATE_ENDPOINT": "::"}},
		{name: "missing opencc dir", env: map[string]string{"TELEGRAM_TOKEN": "t", "OPENCC_DIR": "/nonexistent/gocc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestLoadParseErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("BOT_OWNER_IDS", "abc")

	_, err := Load()
	require.Error(t, err)

	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("TRANSLATE_TIMEOUT_SECONDS", "-1")

	_, err = Load()
	require.Error(t, err)
}
