package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tonimelisma/gdrive-go/internal/config"
	"github.com/tonimelisma/gdrive-go/internal/driveops"
	"github.com/tonimelisma/gdrive-go/internal/memdrive"
)

const testFolder = "folder-1"

// Global flag reset pattern: newRootCmd() binds flags via StringVar/BoolVar,
// which resets the global flag variables to their zero values. Tests that
// call run* functions directly set globals AFTER newRootCmd(); everything
// else goes through SetArgs + Execute.

// isolateEnv points config resolution at an empty temp dir so the host's
// config file and environment never leak into a test.
func isolateEnv(t *testing.T) {
	t.Helper()

	t.Setenv(config.EnvConfig, filepath.Join(t.TempDir(), "absent.toml"))

	for _, name := range []string{
		config.EnvFolder, config.EnvLegacyFolder,
		config.EnvCredentials, config.EnvGoogleCredentials,
	} {
		t.Setenv(name, "")
	}

	old := resolvedCfg
	t.Cleanup(func() { resolvedCfg = old })
}

// useRemote makes every command in the test talk to remote.
func useRemote(t *testing.T, remote driveops.Remote) {
	t.Helper()

	old := newRemote
	newRemote = func(context.Context, *config.Resolved, *slog.Logger) (driveops.Remote, error) {
		return remote, nil
	}

	t.Cleanup(func() { newRemote = old })
}

// runCLI executes the root command against a fresh in-memory drive holding
// testFolder, with --folder set, and returns captured stdout.
func runCLI(t *testing.T, remote *memdrive.Drive, args ...string) (string, error) {
	t.Helper()

	isolateEnv(t)
	useRemote(t, remote)

	var err error

	out := captureStdout(t, func() {
		cmd := newRootCmd()
		cmd.SetArgs(append([]string{"--folder", testFolder, "--quiet"}, args...))
		err = cmd.Execute()
	})

	return out, err
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w

	t.Cleanup(func() { os.Stdout = old })

	done := make(chan []byte)
	go func() {
		b, _ := io.ReadAll(r)
		done <- b
	}()

	fn()

	os.Stdout = old
	w.Close()

	return string(<-done)
}

// writeLocal creates a file under t.TempDir and returns its path.
func writeLocal(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}
