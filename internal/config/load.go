package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Load reads and parses a TOML config file, validates it, and returns the
// resulting Config. Unknown keys are fatal, with "did you mean?" suggestions.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := checkUnknownKeys(&md); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault reads a TOML config file if it exists, otherwise returns a
// Config populated with all default values.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// Resolve loads configuration and applies the override chain:
// defaults -> config file -> environment variables -> CLI flags.
func Resolve(env EnvOverrides, cli CLIOverrides) (*Resolved, error) {
	// Config path: CLI > env > default.
	cfgPath := DefaultConfigPath()
	if env.ConfigPath != "" {
		cfgPath = env.ConfigPath
	}

	if cli.ConfigPath != "" {
		cfgPath = cli.ConfigPath
	}

	cfg, err := LoadOrDefault(cfgPath)
	if err != nil {
		return nil, err
	}

	if env.FolderID != "" {
		cfg.FolderID = env.FolderID
	}

	if env.CredentialsFile != "" {
		cfg.CredentialsFile = env.CredentialsFile
	}

	if cli.FolderID != nil {
		cfg.FolderID = *cli.FolderID
	}

	if cli.CredentialsFile != nil {
		cfg.CredentialsFile = *cli.CredentialsFile
	}

	return resolve(cfg, cfgPath)
}

// resolve parses durations and expands paths of an already layered Config.
func resolve(cfg *Config, cfgPath string) (*Resolved, error) {
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	callTimeout, err := parseDuration("call_timeout", cfg.CallTimeout, minCallTimeout)
	if err != nil {
		return nil, err
	}

	transferTimeout, err := parseDuration("transfer_timeout", cfg.TransferTimeout, 0)
	if err != nil {
		return nil, err
	}

	creds := expandTilde(cfg.CredentialsFile)
	if creds == "" {
		creds = DefaultCredentialsPath()
	}

	return &Resolved{
		ConfigPath:      cfgPath,
		FolderID:        cfg.FolderID,
		CredentialsFile: creds,
		LogLevel:        cfg.LogLevel,
		LogFormat:       cfg.LogFormat,
		CallTimeout:     callTimeout,
		TransferTimeout: transferTimeout,
		DeleteFailure:   cfg.DeleteFailure,
	}, nil
}
