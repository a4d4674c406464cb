// Package config loads taskboard settings from YAML, environment and flags.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	boarderrors "github.com/abatilo/taskboard/internal/errors"
	"github.com/abatilo/taskboard/internal/storage"
	"github.com/abatilo/taskboard/internal/task"
)

const (
	appName        = "taskboard"
	configFileName = "config.yaml"

	defaultStorageKey = "kanban_task_board"
	defaultLogLevel   = "info"
)

// Config represents the application configuration.
type Config struct {
	Backend    string        `yaml:"backend"`
	DataDir    string        `yaml:"data_dir"`
	StorageKey string        `yaml:"storage_key"`
	Seed       *bool         `yaml:"seed"`
	LoadDelay  time.Duration `yaml:"load_delay"`
	LogLevel   string        `yaml:"log_level"`
	Theme      Theme         `yaml:"theme"`
}

// Theme holds one colour per column. Values are lipgloss colour strings.
type Theme struct {
	Todo       string `yaml:"todo"`
	InProgress string `yaml:"in_progress"`
	Done       string `yaml:"done"`
	Accent     string `yaml:"accent"`
}

// DefaultTheme mirrors the red, yellow and green columns of the board.
func DefaultTheme() Theme {
	return Theme{
		Todo:       "#EF4444",
		InProgress: "#EAB308",
		Done:       "#22C55E",
		Accent:     "#3B82F6",
	}
}

// ColorFor returns the colour of a status column.
func (t Theme) ColorFor(s task.Status) string {
	switch s {
	case task.StatusTodo:
		return t.Todo
	case task.StatusInProgress:
		return t.InProgress
	case task.StatusDone:
		return t.Done
	default:
		return t.Accent
	}
}

func (t *Theme) applyDefaults() {
	d := DefaultTheme()
	if t.Todo == "" {
		t.Todo = d.Todo
	}
	if t.InProgress == "" {
		t.InProgress = d.InProgress
	}
	if t.Done == "" {
		t.Done = d.Done
	}
	if t.Accent == "" {
		t.Accent = d.Accent
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	seed := true
	return &Config{
		Backend:    storage.BackendFile,
		StorageKey: defaultStorageKey,
		Seed:       &seed,
		LogLevel:   defaultLogLevel,
		Theme:      DefaultTheme(),
	}
}

// Load reads the config file at path (or the default location when path is
// empty), then applies environment overrides. A missing file yields defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			cfg := Default()
			cfg.applyEnv()
			return cfg, cfg.Validate()
		}
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, err
	default:
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// DefaultPath returns $XDG_CONFIG_HOME/taskboard/config.yaml,
// falling back to ~/.config/taskboard/config.yaml.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, configFileName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", appName, configFileName), nil
}

// Save writes the config to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// applyDefaults fills in fields a partial config file left empty.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Backend == "" {
		c.Backend = d.Backend
	}
	if c.StorageKey == "" {
		c.StorageKey = d.StorageKey
	}
	if c.Seed == nil {
		c.Seed = d.Seed
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	c.Theme.applyDefaults()
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TASKBOARD_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("TASKBOARD_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("TASKBOARD_STORAGE_KEY"); v != "" {
		c.StorageKey = v
	}
	if v := os.Getenv("TASKBOARD_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks values that would otherwise fail later.
func (c *Config) Validate() error {
	if !storage.IsValidBackend(c.Backend) {
		return boarderrors.UnknownBackendError{Name: c.Backend}
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LoadDelay < 0 {
		return fmt.Errorf("load_delay must not be negative: %s", c.LoadDelay)
	}
	return nil
}

// SeedEnabled reports whether an empty board starts with the seed tasks.
func (c *Config) SeedEnabled() bool {
	return c.Seed == nil || *c.Seed
}

// ResolveDataDir returns the configured data directory or the per-project default.
func (c *Config) ResolveDataDir(home string) string {
	if c.DataDir != "" {
		return expandHome(c.DataDir, home)
	}
	return storage.DefaultDataDir(home)
}

// ParseLevel converts a log level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
