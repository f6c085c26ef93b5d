package config

// Default values for configuration options. These are "layer 0" of the
// override chain and work without any config file.
const (
	defaultLogLevel        = "info"
	defaultLogFormat       = "auto"
	defaultCallTimeout     = "30s"
	defaultTransferTimeout = "0"
	defaultDeleteFailure   = "abort"
)

// defaultCredentialsName is looked up in the config directory when no
// credentials file is configured anywhere.
const defaultCredentialsName = "credentials.json"

// DefaultConfig returns a Config populated with all default values. It is
// the starting point for TOML decoding, so unset keys keep their defaults.
func DefaultConfig() *Config {
	return &Config{
		LoggingConfig: LoggingConfig{
			LogLevel:  defaultLogLevel,
			LogFormat: defaultLogFormat,
		},
		TransferConfig: TransferConfig{
			CallTimeout:     defaultCallTimeout,
			TransferTimeout: defaultTransferTimeout,
			DeleteFailure:   defaultDeleteFailure,
		},
	}
}
