package gdrive

import (
	"context"
	"io"
	"log/slog"
)

// Open starts streaming the binary content of a file. The caller must close
// the returned reader. Google-native documents have no binary content and
// fail with a 403 from Drive.
func (c *Client) Open(ctx context.Context, fileID string) (io.ReadCloser, error) {
	c.logger.Info("opening file content", slog.String("id", fileID))

	resp, err := c.srv.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, classify("downloading file", err)
	}

	return resp.Body, nil
}
