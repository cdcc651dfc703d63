// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDBPath is where the contract database lives unless configured
// otherwise.
const DefaultDBPath = "~/.local/share/vertrag/contracts.db"

// DatabasePath resolves the configured database location to an absolute
// filesystem path, falling back to DefaultDBPath when nothing is configured.
func DatabasePath(configured string) string {
	if strings.TrimSpace(configured) == "" {
		configured = DefaultDBPath
	}
	return ExpandPath(configured)
}

// ExpandPath expands a leading ~ and $VAR style environment variables in a
// file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}

	return os.ExpandEnv(path)
}
