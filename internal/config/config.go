// Package config handles the studydesk data directory and its config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/studydesk/studydesk/internal/clierr"
	"github.com/studydesk/studydesk/internal/model"
)

const fileMode = 0o600

// Sentinel errors.
var (
	ErrNotFound = errors.New("no studydesk directory found (run 'studydesk init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the studydesk configuration.
type Config struct {
	Version  int            `yaml:"version"`
	Name     string         `yaml:"name"`
	Storage  string         `yaml:"storage"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Timer    TimerConfig    `yaml:"timer"`

	// dir is the absolute path to the data directory (not serialized).
	dir string `yaml:"-"`
}

// DefaultsConfig holds default values for new tasks.
type DefaultsConfig struct {
	Category string `yaml:"category"`
	Priority string `yaml:"priority"`
}

// TimerConfig holds the Pomodoro period lengths.
type TimerConfig struct {
	FocusSeconds         int `yaml:"focus_seconds"`
	ShortBreakSeconds    int `yaml:"short_break_seconds"`
	LongBreakSeconds     int `yaml:"long_break_seconds"`
	SessionsPerLongBreak int `yaml:"sessions_per_long_break"`
}

// NewDefault creates a Config with default values.
func NewDefault(name string) *Config {
	return &Config{
		Version: CurrentVersion,
		Name:    name,
		Storage: StorageFiles,
		Defaults: DefaultsConfig{
			Category: DefaultCategory,
			Priority: DefaultPriority,
		},
		Timer: TimerConfig{
			FocusSeconds:         DefaultFocusSeconds,
			ShortBreakSeconds:    DefaultShortBreakSeconds,
			LongBreakSeconds:     DefaultLongBreakSeconds,
			SessionsPerLongBreak: DefaultSessionsPerLongBreak,
		},
	}
}

// Dir returns the absolute path to the data directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the data directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if c.Storage != StorageFiles && c.Storage != StorageSQLite {
		return fmt.Errorf("%w: storage must be %q or %q", ErrInvalid, StorageFiles, StorageSQLite)
	}
	if err := model.ValidateCategory(c.Defaults.Category); err != nil {
		return fmt.Errorf("%w: default category: %v", ErrInvalid, err)
	}
	if err := model.ValidatePriority(c.Defaults.Priority); err != nil {
		return fmt.Errorf("%w: default priority: %v", ErrInvalid, err)
	}
	return c.validateTimer()
}

func (c *Config) validateTimer() error {
	if c.Timer.FocusSeconds < 1 {
		return fmt.Errorf("%w: timer.focus_seconds must be >= 1", ErrInvalid)
	}
	if c.Timer.ShortBreakSeconds < 1 {
		return fmt.Errorf("%w: timer.short_break_seconds must be >= 1", ErrInvalid)
	}
	if c.Timer.LongBreakSeconds < 1 {
		return fmt.Errorf("%w: timer.long_break_seconds must be >= 1", ErrInvalid)
	}
	if c.Timer.SessionsPerLongBreak < 1 {
		return fmt.Errorf("%w: timer.sessions_per_long_break must be >= 1", ErrInvalid)
	}
	return nil
}

// Init creates a new studydesk directory with default settings.
func Init(dir, name string) (*Config, error) {
	const dirMode = 0o750

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault(name)
	cfg.SetDir(absDir)

	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given data directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindDir walks upward from startDir looking for a studydesk directory
// containing config.yml. Returns the absolute path to the data directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the data directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.StoreNotFound,
				"no studydesk directory found (run 'studydesk init' to create one)")
		}
		dir = parent
	}
}
