// Package config loads agent-console settings from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/agent-console/internal/store"
)

// Config is the on-disk configuration.
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	Export    ExportConfig    `yaml:"export"`
	Providers ProvidersConfig `yaml:"providers"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver   string `yaml:"driver"`   // sqlite, memory, postgres, mongodb
	Path     string `yaml:"path"`     // sqlite file
	DSN      string `yaml:"dsn"`      // postgres DSN or mongodb URI
	Database string `yaml:"database"` // mongodb database
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// ProvidersConfig holds the simulated collaborator delays as duration
// strings, e.g. "1.5s".
type ProvidersConfig struct {
	TestDelay    string `yaml:"test_delay"`
	InstallDelay string `yaml:"install_delay"`
}

// Dir returns the agent-console home directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".agent-console")
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver: "sqlite",
			Path:   filepath.Join(Dir(), "state.db"),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Export: ExportConfig{Dir: "."},
		Providers: ProvidersConfig{
			TestDelay:    "1.5s",
			InstallDelay: "2s",
		},
	}
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("AGENT_CONSOLE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("AGENT_CONSOLE_DB"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("AGENT_CONSOLE_DSN"); v != "" {
		c.Storage.DSN = v
	}
}

// StoreConfig maps the storage section onto the backend factory config.
func (c *Config) StoreConfig() store.Config {
	sc := store.Config{
		Driver:          c.Storage.Driver,
		SQLitePath:      c.Storage.Path,
		MongoDBDatabase: c.Storage.Database,
	}
	switch c.Storage.Driver {
	case "postgres":
		sc.PostgresDSN = c.Storage.DSN
	case "mongodb":
		sc.MongoDBURI = c.Storage.DSN
	}
	return sc
}

func (c *Config) TestDelay() time.Duration {
	d, err := time.ParseDuration(c.Providers.TestDelay)
	if err != nil {
		return 1500 * time.Millisecond
	}
	return d
}

func (c *Config) InstallDelay() time.Duration {
	d, err := time.ParseDuration(c.Providers.InstallDelay)
	if err != nil {
		return 2 * time.Second
	}
	return d
}

// Logger builds the process logger. debug forces debug level.
func (c *Config) Logger(debug bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Log.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	level := zapcore.InfoLevel
	if c.Log.Level != "" {
		l, err := zapcore.ParseLevel(c.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}
	if debug {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
