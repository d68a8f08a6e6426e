package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/studydesk/studydesk/internal/model"
)

func TestInit_CreatesLoadableConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "studydesk")

	cfg, err := Init(dir, "Spring Semester")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if cfg.Name != "Spring Semester" {
		t.Errorf("Name = %q, want %q", cfg.Name, "Spring Semester")
	}
	if cfg.Storage != StorageFiles {
		t.Errorf("Storage = %q, want %q", cfg.Storage, StorageFiles)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load after Init failed: %v", err)
	}
	if loaded.Name != cfg.Name || loaded.Storage != cfg.Storage {
		t.Errorf("Load = %+v, want %+v", loaded, cfg)
	}
	if loaded.Timer.FocusSeconds != DefaultFocusSeconds {
		t.Errorf("FocusSeconds = %d, want %d", loaded.Timer.FocusSeconds, DefaultFocusSeconds)
	}
	if loaded.Dir() != cfg.Dir() {
		t.Errorf("Dir = %q, want %q", loaded.Dir(), cfg.Dir())
	}
}

func TestLoad_MissingDirReturnsErrNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load = %v, want ErrNotFound", err)
	}
}

func TestSave_PersistsChanges(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Init(dir, "Board")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	cfg.Storage = StorageSQLite
	cfg.Timer.FocusSeconds = 50 * 60
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Storage != StorageSQLite {
		t.Errorf("Storage = %q, want %q", loaded.Storage, StorageSQLite)
	}
	if loaded.Timer.FocusSeconds != 50*60 {
		t.Errorf("FocusSeconds = %d, want %d", loaded.Timer.FocusSeconds, 50*60)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"wrong version", func(c *Config) { c.Version = 99 }},
		{"empty name", func(c *Config) { c.Name = "" }},
		{"unknown storage", func(c *Config) { c.Storage = "postgres" }},
		{"bad default category", func(c *Config) { c.Defaults.Category = "hobby" }},
		{"bad default priority", func(c *Config) { c.Defaults.Priority = "extreme" }},
		{"zero focus", func(c *Config) { c.Timer.FocusSeconds = 0 }},
		{"zero short break", func(c *Config) { c.Timer.ShortBreakSeconds = 0 }},
		{"zero long break", func(c *Config) { c.Timer.LongBreakSeconds = 0 }},
		{"zero sessions per long break", func(c *Config) { c.Timer.SessionsPerLongBreak = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault("Board")
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestValidate_AcceptsDefaults(t *testing.T) {
	if err := NewDefault("Board").Validate(); err != nil {
		t.Errorf("Validate on defaults = %v, want nil", err)
	}

	cfg := NewDefault("Board")
	cfg.Defaults.Priority = model.PriorityUrgent
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate with urgent default = %v, want nil", err)
	}
}

func TestFindDir_WalksUpward(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, DefaultDir)
	if _, err := Init(dataDir, "Board"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	found, err := FindDir(nested)
	if err != nil {
		t.Fatalf("FindDir failed: %v", err)
	}
	if found != dataDir {
		t.Errorf("FindDir = %q, want %q", found, dataDir)
	}
}

func TestFindDir_InsideDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), DefaultDir)
	if _, err := Init(dataDir, "Board"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	found, err := FindDir(dataDir)
	if err != nil {
		t.Fatalf("FindDir failed: %v", err)
	}
	if found != dataDir {
		t.Errorf("FindDir = %q, want %q", found, dataDir)
	}
}

func TestFindDir_NotFound(t *testing.T) {
	_, err := FindDir(t.TempDir())
	if err == nil {
		t.Error("FindDir in empty tree should fail")
	}
}
