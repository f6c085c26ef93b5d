package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/gdrive-go/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration after all overrides",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
}

// configJSON is the JSON output schema for config show. Durations are
// rendered in time.Duration string form; "0s" means no timeout.
type configJSON struct {
	ConfigPath      string `json:"config_path"`
	FolderID        string `json:"folder_id"`
	CredentialsFile string `json:"credentials_file"`
	LogLevel        string `json:"log_level"`
	LogFormat       string `json:"log_format"`
	CallTimeout     string `json:"call_timeout"`
	TransferTimeout string `json:"transfer_timeout"`
	DeleteFailure   string `json:"delete_failure"`
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	if resolvedCfg == nil {
		return fmt.Errorf("no configuration loaded")
	}

	if flagJSON {
		return printJSON(configJSON{
			ConfigPath:      resolvedCfg.ConfigPath,
			FolderID:        resolvedCfg.FolderID,
			CredentialsFile: resolvedCfg.CredentialsFile,
			LogLevel:        resolvedCfg.LogLevel,
			LogFormat:       resolvedCfg.LogFormat,
			CallTimeout:     resolvedCfg.CallTimeout.String(),
			TransferTimeout: resolvedCfg.TransferTimeout.String(),
			DeleteFailure:   resolvedCfg.DeleteFailure,
		})
	}

	return config.RenderEffective(resolvedCfg, os.Stdout)
}
