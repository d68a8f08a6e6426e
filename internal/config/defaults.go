package config

import "github.com/studydesk/studydesk/internal/model"

const (
	// DefaultDir is the default data directory name.
	DefaultDir = "studydesk"
	// ConfigFileName is the name of the config file within the data directory.
	ConfigFileName = "config.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 1

	// Storage backends.
	StorageFiles  = "files"
	StorageSQLite = "sqlite"

	// DefaultCategory is the default category for new tasks.
	DefaultCategory = model.CategoryAssignment
	// DefaultPriority is the default priority for new tasks.
	DefaultPriority = model.PriorityMedium

	// Pomodoro defaults: 25-minute focus, 5-minute short break,
	// 15-minute long break every 4th focus session.
	DefaultFocusSeconds         = 25 * 60
	DefaultShortBreakSeconds    = 5 * 60
	DefaultLongBreakSeconds     = 15 * 60
	DefaultSessionsPerLongBreak = 4
)
