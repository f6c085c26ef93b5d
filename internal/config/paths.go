package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	appName        = "gdrive-go"
	configFileName = "config.toml"
)

// DefaultConfigDir returns the per-user config directory for gdrive-go:
// $XDG_CONFIG_HOME/gdrive-go (else ~/.config/gdrive-go) on Linux,
// ~/Library/Application Support/gdrive-go on macOS. Empty when the home
// directory is unknown.
func DefaultConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(base, appName)
}

// DefaultConfigPath is the config file consulted when neither
// GDRIVE_GO_CONFIG nor --config is given.
func DefaultConfigPath() string {
	return inConfigDir(configFileName)
}

// DefaultCredentialsPath is credentials.json inside the config dir, used
// when no credentials file is configured.
func DefaultCredentialsPath() string {
	return inConfigDir(defaultCredentialsName)
}

func inConfigDir(name string) string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}

	return filepath.Join(dir, name)
}

// expandTilde resolves a leading "~/" against the home directory. Other
// forms, such as "~user/", are left alone.
func expandTilde(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, rest)
}
