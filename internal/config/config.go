package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/handling-analyzer/internal/common"
	"github.com/Veraticus/handling-analyzer/internal/guideline"
)

// Configuration keys.
const (
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
	KeyClass          = "analysis.class"
	KeyGuidelinesPath = "guidelines.path"
	KeyStoragePath    = "storage.path"
	KeyHistoryEnabled = "history.enabled"
	KeyBatchWorkers   = "batch.workers"
)

// Defaults.
const (
	DefaultStoragePath = "~/.local/share/handling/history.db"
	DefaultWorkers     = 4
	maxWorkers         = 64
)

// Settings is the validated analyzer configuration.
type Settings struct {
	LogLevel       string
	LogFormat      string
	Class          guideline.Class
	GuidelinesPath string
	StoragePath    string
	Workers        int
	HistoryEnabled bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyClass, string(guideline.ClassImport))
	v.SetDefault(KeyStoragePath, DefaultStoragePath)
	v.SetDefault(KeyHistoryEnabled, true)
	v.SetDefault(KeyBatchWorkers, DefaultWorkers)
}

// Load reads settings from the global viper instance.
func Load() (*Settings, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads and validates settings from v.
func LoadFrom(v *viper.Viper) (*Settings, error) {
	SetDefaults(v)

	s := &Settings{
		LogLevel:       strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:      strings.ToLower(v.GetString(KeyLogFormat)),
		Class:          guideline.Class(strings.ToLower(strings.TrimSpace(v.GetString(KeyClass)))),
		GuidelinesPath: ExpandPath(v.GetString(KeyGuidelinesPath)),
		StoragePath:    ExpandPath(v.GetString(KeyStoragePath)),
		Workers:        v.GetInt(KeyBatchWorkers),
		HistoryEnabled: v.GetBool(KeyHistoryEnabled),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks settings that do not depend on other files.
func (s *Settings) Validate() error {
	if _, err := common.ParseLevel(s.LogLevel); err != nil {
		return err
	}
	if s.LogFormat != "console" && s.LogFormat != "json" {
		return fmt.Errorf("%s %q must be console or json: %w", KeyLogFormat, s.LogFormat, common.ErrInvalidConfig)
	}
	if s.Class == "" {
		return fmt.Errorf("%s is empty: %w", KeyClass, common.ErrInvalidConfig)
	}
	if s.Workers < 1 || s.Workers > maxWorkers {
		return fmt.Errorf("%s must be between 1 and %d, got %d: %w", KeyBatchWorkers, maxWorkers, s.Workers, common.ErrInvalidConfig)
	}
	if s.HistoryEnabled && strings.TrimSpace(s.StoragePath) == "" {
		return fmt.Errorf("%s is empty while history is enabled: %w", KeyStoragePath, common.ErrMissingConfig)
	}
	return nil
}

// Guidelines returns the configured guideline table. The class setting is
// checked against it so an unknown class fails before any file is read.
func (s *Settings) Guidelines() (*guideline.Table, error) {
	table := guideline.Default()
	if s.GuidelinesPath != "" {
		loaded, err := guideline.LoadFile(s.GuidelinesPath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KeyGuidelinesPath, err)
		}
		table = loaded
	}
	if _, err := table.For(s.Class); err != nil {
		return nil, err
	}
	return table, nil
}
