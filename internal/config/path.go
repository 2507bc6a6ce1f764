// Package config loads analyzer settings from viper.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves environment variables and a leading ~ in path.
// Paths of the form ~user are returned with only variables expanded.
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
