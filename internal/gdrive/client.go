package gdrive

import (
	"log/slog"
	"time"

	"google.golang.org/api/drive/v3"
)

// Client performs folder operations against a Drive v3 service. It holds no
// mutable state and is safe to reuse across sequential calls.
type Client struct {
	srv    *drive.Service
	logger *slog.Logger
}

// NewClient wraps an authenticated Drive service.
func NewClient(srv *drive.Service, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		srv:    srv,
		logger: logger,
	}
}

// toEntry normalizes a Drive file resource into an Entry.
func (c *Client) toEntry(f *drive.File) Entry {
	entry := Entry{
		ID:       f.Id,
		Name:     f.Name,
		MimeType: f.MimeType,
		Size:     f.Size,
		MD5:      f.Md5Checksum,
		IsFolder: f.MimeType == FolderMimeType,
	}

	if f.ModifiedTime != "" {
		t, err := time.Parse(time.RFC3339, f.ModifiedTime)
		if err != nil {
			c.logger.Debug("ignoring unparsable modifiedTime",
				slog.String("file_id", f.Id),
				slog.String("raw", f.ModifiedTime),
			)
		} else {
			entry.ModifiedAt = t
		}
	}

	return entry
}
