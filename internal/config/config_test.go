package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "state.db", filepath.Base(cfg.Storage.Path))
	assert.Equal(t, 1500*time.Millisecond, cfg.TestDelay())
	assert.Equal(t, 2*time.Second, cfg.InstallDelay())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  driver: mongodb
  dsn: mongodb://localhost:27017
  database: console
log:
  level: warn
providers:
  test_delay: 10ms
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mongodb", cfg.Storage.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format, "unset keys keep defaults")
	assert.Equal(t, 10*time.Millisecond, cfg.TestDelay())

	sc := cfg.StoreConfig()
	assert.Equal(t, "mongodb://localhost:27017", sc.MongoDBURI)
	assert.Equal(t, "console", sc.MongoDBDatabase)
	assert.Empty(t, sc.PostgresDSN)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unterminated"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AGENT_CONSOLE_DRIVER", "postgres")
	t.Setenv("AGENT_CONSOLE_DSN", "postgres://localhost/console")
	t.Setenv("AGENT_CONSOLE_DB", "/tmp/other.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.Storage.Path)

	sc := cfg.StoreConfig()
	assert.Equal(t, "postgres", sc.Driver)
	assert.Equal(t, "postgres://localhost/console", sc.PostgresDSN)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Export.Dir = "/exports"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLogger(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "warn"

	l, err := cfg.Logger(false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))

	l, err = cfg.Logger(true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	cfg.Log.Level = "loud"
	_, err = cfg.Logger(false)
	assert.Error(t, err)
}
