// Package bytefmt renders byte counts as human-readable strings using binary
// (1024-based) scaling. It is a leaf package with no dependencies so that both
// the CLI and library callers can format sizes identically.
package bytefmt

import (
	"errors"
	"fmt"
)

// ErrNegative is returned for byte counts below zero.
var ErrNegative = errors.New("bytefmt: negative byte count")

// step is the scaling factor between adjacent units.
const step = 1024

// units is ordered smallest to largest. TB is the ceiling: larger values stay
// in TB with a large numeral.
var units = []string{"B", "KB", "MB", "GB", "TB"}

// Units returns the ordered unit symbols used by Format.
func Units() []string {
	out := make([]string, len(units))
	copy(out, units)

	return out
}

// Format converts bytes into "<value> <unit>" with exactly two decimals,
// e.g. 1536 -> "1.50 KB" and 0 -> "0.00 B".
func Format(bytes int64) (string, error) {
	if bytes < 0 {
		return "", fmt.Errorf("%w: %d", ErrNegative, bytes)
	}

	value := float64(bytes)
	idx := 0

	for value >= step && idx < len(units)-1 {
		value /= step
		idx++
	}

	return fmt.Sprintf("%.2f %s", value, units[idx]), nil
}
