package driveops

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tonimelisma/gdrive-go/internal/memdrive"
)

const testFolder = "folder-1"

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestSession(t *testing.T, opts Options) (*Session, *memdrive.Drive) {
	t.Helper()

	remote := memdrive.New(testFolder)
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}

	s, err := NewSession(remote, opts)
	require.NoError(t, err)

	return s, remote
}

// writeLocal creates a file under t.TempDir and returns its path.
func writeLocal(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}
