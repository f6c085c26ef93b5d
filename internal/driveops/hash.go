package driveops

import (
	"crypto/md5" //nolint:gosec // Drive reports md5Checksum; not used for security
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// ComputeMD5 returns the hex MD5 digest of a local file, the same encoding
// Drive uses for md5Checksum. Uses streaming I/O (constant memory).
func ComputeMD5(fsPath string) (string, error) {
	f, err := os.Open(fsPath)
	if err != nil {
		return "", fmt.Errorf("opening %s for hashing: %w", fsPath, err)
	}
	defer f.Close()

	h := md5.New() //nolint:gosec // integrity check only
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", fsPath, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
