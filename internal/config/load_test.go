package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murermader/flashcards/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("", nil, "/var/lib/flashcards")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8417, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "/var/lib/flashcards", cfg.Storage.Dir)

	// Scheduler overrides default to zero, meaning "use built-in values".
	assert.Zero(t, cfg.SRS.MinIntervalDays)
	assert.Zero(t, cfg.SRS.HardMultiplier)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FLASHCARDS_SERVER_PORT", "9000")
	t.Setenv("FLASHCARDS_SERVER_LOG_LEVEL", "debug")
	t.Setenv("FLASHCARDS_STORAGE_DIR", "/tmp/cards")

	cfg, err := config.Load("", nil, "/var/lib/flashcards")
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "/tmp/cards", cfg.Storage.Dir)
	// Untouched keys keep their defaults.
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 9123\n  log_level: warn\nsrs:\n  min_interval_days: 2\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := config.Load(path, nil, "/var/lib/flashcards")
	require.NoError(t, err)

	assert.Equal(t, 9123, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Server.LogLevel)
	assert.Equal(t, 2, cfg.SRS.MinIntervalDays)
}

func TestLoadConfigFileMissing(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), nil, "/var/lib/flashcards")
	assert.Error(t, err)
}

func TestLoadFlagsWinOverEnv(t *testing.T) {
	t.Setenv("FLASHCARDS_SERVER_PORT", "9000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("server.port", 8417, "")
	require.NoError(t, flags.Parse([]string{"--server.port=9555"}))

	cfg, err := config.Load("", flags, "/var/lib/flashcards")
	require.NoError(t, err)

	assert.Equal(t, 9555, cfg.Server.Port)
}

func TestLoadInvalidLogLevel(t *testing.T) {
	t.Setenv("FLASHCARDS_SERVER_LOG_LEVEL", "loud")

	_, err := config.Load("", nil, "/var/lib/flashcards")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LogLevel")
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("FLASHCARDS_SERVER_PORT", "70000")

	_, err := config.Load("", nil, "/var/lib/flashcards")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Port")
}
