package config

import (
	"fmt"
	"io"
	"time"
)

// RenderEffective writes the resolved configuration as TOML-like text to w.
// This powers "config show".
func RenderEffective(r *Resolved, w io.Writer) error {
	ew := &errWriter{w: w}

	ew.printf("# Effective configuration (file: %s)\n\n", r.ConfigPath)

	ew.printf("[drive]\n")
	ew.printf("  folder_id        = %q\n", r.FolderID)
	ew.printf("  credentials_file = %q\n", r.CredentialsFile)
	ew.printf("\n")

	ew.printf("[logging]\n")
	ew.printf("  log_level  = %q\n", r.LogLevel)
	ew.printf("  log_format = %q\n", r.LogFormat)
	ew.printf("\n")

	ew.printf("[transfers]\n")
	ew.printf("  call_timeout     = %q\n", durationString(r.CallTimeout))
	ew.printf("  transfer_timeout = %q\n", durationString(r.TransferTimeout))
	ew.printf("  delete_failure   = %q\n", r.DeleteFailure)

	return ew.err
}

func durationString(d time.Duration) string {
	if d == 0 {
		return "0"
	}

	return d.String()
}

// errWriter wraps an io.Writer and captures the first write error.
// Subsequent writes after an error are no-ops.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}

	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
