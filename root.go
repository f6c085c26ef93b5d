package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/tonimelisma/gdrive-go/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// Global persistent flags, bound in newRootCmd().
var (
	flagConfigPath  string
	flagFolder      string
	flagCredentials string
	flagJSON        bool
	flagVerbose     bool
	flagQuiet       bool
)

// resolvedCfg holds the effective configuration loaded by PersistentPreRunE.
// It is available to all subcommands after the root pre-run phase completes.
var resolvedCfg *config.Resolved

// errNotPresent signals a negative answer (find found nothing). main exits 1
// without printing an error banner, like grep.
var errNotPresent = errors.New("not present")

// newRootCmd builds and returns the fully-assembled root command with all
// subcommands registered. Called once from main().
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gdrive-go",
		Short: "Google Drive folder CLI",
		Long: `Lists, uploads, replaces, deletes and downloads files in one Google Drive
folder, and reports the account storage quota.`,
		Version: version,
		// Silence Cobra's default error/usage printing; main handles it.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "config file path")
	cmd.PersistentFlags().StringVar(&flagFolder, "folder", "", "remote folder ID")
	cmd.PersistentFlags().StringVar(&flagCredentials, "credentials", "", "credentials JSON file")
	cmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output in JSON format")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress informational output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(newLsCmd())
	cmd.AddCommand(newFindCmd())
	cmd.AddCommand(newPutCmd())
	cmd.AddCommand(newRmCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newQuotaCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// loadConfig reads .env, resolves the effective configuration from the
// four-layer override chain, and stores it in resolvedCfg.
func loadConfig(cmd *cobra.Command) error {
	if _, err := config.LoadDotEnv(config.DotEnvFile); err != nil {
		return fmt.Errorf("loading %s: %w", config.DotEnvFile, err)
	}

	cli := config.CLIOverrides{
		ConfigPath: flagConfigPath,
	}

	// Only override when the user explicitly set the flag, so an empty flag
	// value never masks the config file or the environment.
	if cmd.Flags().Changed("folder") {
		cli.FolderID = &flagFolder
	}

	if cmd.Flags().Changed("credentials") {
		cli.CredentialsFile = &flagCredentials
	}

	resolved, err := config.Resolve(config.ReadEnvOverrides(), cli)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	resolvedCfg = resolved

	return nil
}

// logLevel picks the level from config, then lets --verbose and --quiet
// override it because CLI flags always win.
func logLevel() slog.Level {
	level := slog.LevelInfo

	if resolvedCfg != nil {
		switch resolvedCfg.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}

	if flagVerbose {
		level = slog.LevelDebug
	}

	if flagQuiet {
		level = slog.LevelError
	}

	return level
}

// buildLogger creates the stderr logger for a command.
func buildLogger() *slog.Logger {
	format := "auto"
	if resolvedCfg != nil {
		format = resolvedCfg.LogFormat
	}

	return newLogger(os.Stderr, logLevel(), format)
}

// newLogger builds an slog.Logger for w. "auto" means colored tint output
// when w is a terminal and plain text otherwise.
func newLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	case "text":
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	}

	if isTerminal(w) {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		}))
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// exitOnError prints a user-friendly error message to stderr and exits.
func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
