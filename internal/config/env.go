package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Environment variable names for overrides.
const (
	EnvConfig      = "GDRIVE_GO_CONFIG"
	EnvFolder      = "GDRIVE_GO_FOLDER"
	EnvCredentials = "GDRIVE_GO_CREDENTIALS"

	// Fallbacks consulted when the gdrive-go variables are unset.
	EnvLegacyFolder      = "GD_FOLDER"
	EnvGoogleCredentials = "GOOGLE_APPLICATION_CREDENTIALS"
)

// DotEnvFile is the file LoadDotEnv reads by default.
const DotEnvFile = ".env"

// EnvOverrides holds values derived from environment variables.
type EnvOverrides struct {
	ConfigPath      string // GDRIVE_GO_CONFIG
	FolderID        string // GDRIVE_GO_FOLDER, else GD_FOLDER
	CredentialsFile string // GDRIVE_GO_CREDENTIALS, else GOOGLE_APPLICATION_CREDENTIALS
}

// ReadEnvOverrides reads environment variables and returns any overrides
// found. It does not modify any Config.
func ReadEnvOverrides() EnvOverrides {
	return EnvOverrides{
		ConfigPath:      os.Getenv(EnvConfig),
		FolderID:        firstEnv(EnvFolder, EnvLegacyFolder),
		CredentialsFile: firstEnv(EnvCredentials, EnvGoogleCredentials),
	}
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}

	return ""
}

// LoadDotEnv reads KEY=VALUE pairs from a .env file into the process
// environment. A missing file is not an error. Variables that are already
// set take precedence over the file. Returns the keys that were set.
func LoadDotEnv(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var set []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), "\"'")

		if _, exists := os.LookupEnv(key); exists || key == "" {
			continue
		}

		if err := os.Setenv(key, value); err != nil {
			return set, fmt.Errorf("setting %s from %s: %w", key, path, err)
		}

		set = append(set, key)
	}

	if err := scanner.Err(); err != nil {
		return set, fmt.Errorf("reading %s: %w", path, err)
	}

	return set, nil
}
