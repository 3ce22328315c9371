package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file kept at the root of a data directory.
const FileName = "tally.yaml"

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Display  DisplayConfig  `yaml:"display"`
	QuickAdd []string       `yaml:"quick_add,omitempty"`
	Activity ActivityConfig `yaml:"activity"`
	Log      LogConfig      `yaml:"log"`
}

// StorageConfig selects where budgets are persisted.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"` // relative paths resolve against the data dir
}

// DisplayConfig controls how amounts are shown.
type DisplayConfig struct {
	Currency string `yaml:"currency"`
}

// ActivityConfig toggles the CSV activity log.
type ActivityConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LogConfig sets the diagnostic log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a tally.yaml file from disk. Fields missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadDir reads <dataDir>/tally.yaml, returning defaults if it does not exist.
func LoadDir(dataDir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dataDir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks that the configured backend is known.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
		return nil
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
}

// StoragePath resolves the storage path against dataDir.
func (c *Config) StoragePath(dataDir string) string {
	p := c.Storage.Path
	if p == "" {
		p = DefaultStorageFile(c.Storage.Backend)
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dataDir, p)
}

// DefaultStorageFile returns the file name used by a backend when no path
// is configured.
func DefaultStorageFile(backend string) string {
	if backend == BackendSQLite {
		return "tally.db"
	}
	return "tally.json"
}

// Default returns a Config with sensible defaults for a new data directory.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Path:    DefaultStorageFile(BackendFile),
		},
		Display: DisplayConfig{
			Currency: "₱",
		},
		Activity: ActivityConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// DataDir picks the data directory: an explicit flag value, then
// TALLY_DATA_DIR, then $XDG_DATA_HOME/tally, then ~/.local/share/tally.
func DataDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if dir := os.Getenv("TALLY_DATA_DIR"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "tally")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "tally")
}
