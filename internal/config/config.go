package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/edyy78/uireplay/internal/a11y"
	"github.com/edyy78/uireplay/internal/input"
	"github.com/edyy78/uireplay/internal/interp"
	"github.com/edyy78/uireplay/internal/journal"
	"github.com/edyy78/uireplay/internal/snapshot"
	"github.com/edyy78/uireplay/internal/target"
)

// DefaultFile is read from the working directory when --config is not given
const DefaultFile = "uireplay.yaml"

// DefaultWindowTitle is the title raised before a script runs
const DefaultWindowTitle = "GNU Image Manipulation Program"

// Environment variables consulted after the config file
const (
	EnvApp     = "UIREPLAY_APP"
	EnvBackend = "UIREPLAY_BACKEND"
)

// Config holds every tunable of a replay session
type Config struct {
	App         string            `yaml:"app"`
	WindowTitle string            `yaml:"window_title"`
	Startup     time.Duration     `yaml:"startup"`
	Pause       time.Duration     `yaml:"pause"`
	SettleDelay time.Duration     `yaml:"settle_delay"`
	ExportDelay time.Duration     `yaml:"export_delay"`
	ExportFile  string            `yaml:"export_file"`
	LogFile     string            `yaml:"log_file"`
	LogLevel    string            `yaml:"log_level"`
	Backend     string            `yaml:"backend"`
	Encoding    string            `yaml:"encoding"`
	MaxDepth    int               `yaml:"max_depth"`
	Actions     map[string]string `yaml:"actions"`
	Toolbox     map[string]string `yaml:"toolbox"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		App:         target.DefaultName,
		WindowTitle: DefaultWindowTitle,
		Startup:     target.DefaultStartup,
		Pause:       interp.DefaultPause,
		SettleDelay: interp.DefaultSettleDelay,
		ExportDelay: interp.DefaultExportDelay,
		ExportFile:  snapshot.DefaultExportFile,
		LogFile:     journal.DefaultPath,
		LogLevel:    "warn",
		Backend:     string(input.BackendXdotool),
		MaxDepth:    a11y.DefaultMaxDepth,
	}
}

// Load reads path over the defaults. A missing file is only an error when
// required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment; lookup is usually os.LookupEnv
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvApp); ok && v != "" {
		c.App = v
	}
	if v, ok := lookup(EnvBackend); ok && v != "" {
		c.Backend = v
	}
}

// Validate checks values that cannot be checked by the YAML decoder
func (c Config) Validate() error {
	if c.App == "" {
		return errors.New("app name must not be empty")
	}
	if c.Pause < 0 || c.SettleDelay < 0 || c.ExportDelay < 0 {
		return errors.New("delays must not be negative")
	}
	if c.Startup <= 0 {
		return fmt.Errorf("startup wait must be positive, got %s", c.Startup)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max depth must be at least 1, got %d", c.MaxDepth)
	}
	if _, err := input.ValidateBackend(c.Backend); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel
func (c Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, fmt.Errorf("unknown log level: %q (valid options: debug, info, warn, error)", c.LogLevel)
	}
	return lvl, nil
}
