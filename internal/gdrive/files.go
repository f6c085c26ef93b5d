package gdrive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

// listPageSize is the pageSize value for Files.List. 1000 is the maximum
// the Drive API accepts.
const listPageSize = 1000

// Partial-response field masks. Keep entryFields in sync with toEntry.
const (
	entryFields = "id, name, mimeType, size, md5Checksum, modifiedTime"
	listFields  = "nextPageToken, files(" + entryFields + ")"
)

// queryEscaper escapes string literals inside a Drive search query.
var queryEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// folderQuery selects the non-trashed direct children of folderID.
func folderQuery(folderID string) string {
	return fmt.Sprintf("'%s' in parents and trashed = false", queryEscaper.Replace(folderID))
}

// List returns every non-trashed entry directly inside folderID, following
// pagination to the end. Order is whatever Drive returns.
func (c *Client) List(ctx context.Context, folderID string) ([]Entry, error) {
	c.logger.Debug("listing folder", slog.String("folder_id", folderID))

	var entries []Entry

	err := c.srv.Files.List().
		Q(folderQuery(folderID)).
		Fields(listFields).
		PageSize(listPageSize).
		Pages(ctx, func(page *drive.FileList) error {
			for _, f := range page.Files {
				entries = append(entries, c.toEntry(f))
			}

			return nil
		})
	if err != nil {
		return nil, classify("listing folder", err)
	}

	c.logger.Debug("listed folder",
		slog.String("folder_id", folderID),
		slog.Int("count", len(entries)),
	)

	return entries, nil
}

// Get fetches the metadata of a single file.
func (c *Client) Get(ctx context.Context, fileID string) (*Entry, error) {
	f, err := c.srv.Files.Get(fileID).Fields(entryFields).Context(ctx).Do()
	if err != nil {
		return nil, classify("getting file", err)
	}

	entry := c.toEntry(f)

	return &entry, nil
}

// Create uploads content as a new file described by req. content may be nil
// to create an empty file.
func (c *Client) Create(ctx context.Context, req CreateRequest, content io.Reader) (*Entry, error) {
	c.logger.Info("creating file",
		slog.String("name", req.Name),
		slog.String("parent_id", req.ParentID),
		slog.String("mime_type", req.MimeType),
	)

	meta := &drive.File{
		Name:     req.Name,
		MimeType: req.MimeType,
		Parents:  []string{req.ParentID},
	}

	call := c.srv.Files.Create(meta).Fields(entryFields).Context(ctx)
	if content != nil {
		var opts []googleapi.MediaOption
		if req.MimeType != "" {
			opts = append(opts, googleapi.ContentType(req.MimeType))
		}

		call = call.Media(content, opts...)
	}

	f, err := call.Do()
	if err != nil {
		return nil, classify("creating file", err)
	}

	entry := c.toEntry(f)

	c.logger.Debug("created file",
		slog.String("id", entry.ID),
		slog.String("name", entry.Name),
		slog.Int64("size", entry.Size),
	)

	return &entry, nil
}

// Delete permanently removes a file, bypassing the trash.
func (c *Client) Delete(ctx context.Context, fileID string) error {
	c.logger.Info("deleting file", slog.String("id", fileID))

	if err := c.srv.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return classify("deleting file", err)
	}

	return nil
}
