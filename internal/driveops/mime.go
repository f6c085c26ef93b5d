package driveops

import (
	"fmt"
	"mime"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// DetectMIME guesses the MIME type of a local file: by extension first, then
// by sniffing its content. Parameters such as charset are dropped.
func DetectMIME(path string) (string, error) {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return baseType(t), nil
	}

	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detecting MIME type of %s: %w", path, err)
	}

	return baseType(m.String()), nil
}

func baseType(t string) string {
	mt, _, err := mime.ParseMediaType(t)
	if err != nil {
		return t
	}

	return mt
}
