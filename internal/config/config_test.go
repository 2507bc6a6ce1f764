package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/handling-analyzer/internal/common"
	"github.com/Veraticus/handling-analyzer/internal/guideline"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("HANDLING_TEST_DIR", "/tmp/handling")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/history.db", want: filepath.Join(home, "history.db")},
		{in: "$HANDLING_TEST_DIR/history.db", want: "/tmp/handling/history.db"},
		{in: "/abs/path.db", want: "/abs/path.db"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	s, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "console", s.LogFormat)
	assert.Equal(t, guideline.ClassImport, s.Class)
	assert.Equal(t, DefaultWorkers, s.Workers)
	assert.True(t, s.HistoryEnabled)
	assert.Equal(t, ExpandPath(DefaultStoragePath), s.StoragePath)
	assert.Empty(t, s.GuidelinesPath)
}

func TestLoadFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: DEBUG
  format: json
analysis:
  class: Patent
storage:
  path: `+filepath.Join(dir, "h.db")+`
batch:
  workers: 8
history:
  enabled: false
`), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	s, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "json", s.LogFormat)
	assert.Equal(t, guideline.ClassPatent, s.Class)
	assert.Equal(t, 8, s.Workers)
	assert.False(t, s.HistoryEnabled)
	assert.Equal(t, filepath.Join(dir, "h.db"), s.StoragePath)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "bad level", key: KeyLogLevel, value: "loud"},
		{name: "bad format", key: KeyLogFormat, value: "xml"},
		{name: "empty class", key: KeyClass, value: " "},
		{name: "no workers", key: KeyBatchWorkers, value: 0},
		{name: "too many workers", key: KeyBatchWorkers, value: 1000},
		{name: "no storage path", key: KeyStoragePath, value: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.value)
			_, err := LoadFrom(v)
			require.Error(t, err)
			assert.True(t, isConfigError(err), "unexpected error type: %v", err)
		})
	}
}

func isConfigError(err error) bool {
	return errors.Is(err, common.ErrInvalidConfig) || errors.Is(err, common.ErrMissingConfig)
}

func TestGuidelines(t *testing.T) {
	s, err := LoadFrom(viper.New())
	require.NoError(t, err)

	table, err := s.Guidelines()
	require.NoError(t, err)
	assert.Len(t, table.Classes(), 4)

	s.Class = "hovercraft"
	_, err = s.Guidelines()
	assert.ErrorIs(t, err, common.ErrUnknownVehicleClass)

	path := filepath.Join(t.TempDir(), "guidelines.yaml")
	require.NoError(t, os.WriteFile(path, []byte("classes:\n  hovercraft:\n    fBrakeForce: 0.5\n"), 0o600))
	s.GuidelinesPath = path
	table, err = s.Guidelines()
	require.NoError(t, err)
	assert.Equal(t, []guideline.Class{"hovercraft"}, table.Classes())

	s.GuidelinesPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = s.Guidelines()
	assert.Error(t, err)
}
