// Package config implements TOML configuration loading, validation, and
// platform-specific path resolution for gdrive-go. Values resolve through a
// four-layer override chain: defaults -> config file -> environment -> CLI
// flags. A .env file in the working directory, when present, feeds the
// environment layer without overriding variables that are already set.
package config

import "time"

// Config is the top-level configuration structure parsed from a TOML file.
// All keys are flat top-level keys; the embedded structs only group them.
type Config struct {
	DriveConfig
	LoggingConfig
	TransferConfig
}

// DriveConfig selects the remote folder and the credentials used to reach it.
type DriveConfig struct {
	FolderID        string `toml:"folder_id"`
	CredentialsFile string `toml:"credentials_file"`
}

// LoggingConfig controls log output: level and handler format.
type LoggingConfig struct {
	LogLevel  string `toml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `toml:"log_format" validate:"oneof=auto text json"`
}

// TransferConfig bounds remote calls and picks the delete-failure policy of
// upload-and-replace. Durations use time.ParseDuration syntax; "0" disables
// the timeout.
type TransferConfig struct {
	CallTimeout     string `toml:"call_timeout"`
	TransferTimeout string `toml:"transfer_timeout"`
	DeleteFailure   string `toml:"delete_failure" validate:"oneof=abort proceed"`
}

// CLIOverrides holds values from CLI flags. Pointer fields distinguish "not
// specified" (nil) from "explicitly set to the empty string".
type CLIOverrides struct {
	ConfigPath      string  // --config (empty = env or default)
	FolderID        *string // --folder
	CredentialsFile *string // --credentials
}

// Resolved is the effective configuration after every layer has been
// applied, with durations parsed and paths expanded.
type Resolved struct {
	ConfigPath      string // file consulted, whether or not it existed
	FolderID        string
	CredentialsFile string
	LogLevel        string
	LogFormat       string
	CallTimeout     time.Duration
	TransferTimeout time.Duration
	DeleteFailure   string
}
