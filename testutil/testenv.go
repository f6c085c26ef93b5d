// Package testutil provides shared environment helpers for the live E2E
// tests. It depends only on the standard library.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AllowlistEnv names the comma-separated list of Drive folder IDs that E2E
// tests may write to.
const AllowlistEnv = "GDRIVE_GO_ALLOWED_TEST_FOLDERS"

// ValidateAllowlist crashes the process unless the folder named by
// folderEnvVar is set and listed in AllowlistEnv. E2E tests create and
// delete files, so they never run against a folder nobody opted in.
func ValidateAllowlist(folderEnvVar string) string {
	allowlist := os.Getenv(AllowlistEnv)
	if allowlist == "" {
		fmt.Fprintf(os.Stderr, "FATAL: %s not set\n", AllowlistEnv)
		fmt.Fprintln(os.Stderr, "Set it in .env or as an environment variable.")
		os.Exit(1)
	}

	folder := os.Getenv(folderEnvVar)
	if folder == "" {
		fmt.Fprintf(os.Stderr, "FATAL: %s not set\n", folderEnvVar)
		os.Exit(1)
	}

	for _, a := range strings.Split(allowlist, ",") {
		if strings.TrimSpace(a) == folder {
			return folder
		}
	}

	fmt.Fprintf(os.Stderr, "FATAL: %s=%q is not in %s=%q\n",
		folderEnvVar, folder, AllowlistEnv, allowlist)
	os.Exit(1)

	return ""
}

// FindModuleRoot walks up from the current directory to find go.mod.
// Returns the fallback if the root is not found.
func FindModuleRoot(fallback string) string {
	dir, err := os.Getwd()
	if err != nil {
		return fallback
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return fallback
		}

		dir = parent
	}
}
