package gdrive

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/drive/v3"
)

const testFolder = "folder-1"

func TestList_FollowsPagination(t *testing.T) {
	fd, client := newFakeDrive(t)

	fd.seed(testFolder, "a.txt", "text/plain", []byte("aaa"))
	fd.seed(testFolder, "b.txt", "text/plain", []byte("bb"))
	fd.seed(testFolder, "c.txt", "text/plain", []byte("c"))
	fd.seed("other-folder", "d.txt", "text/plain", []byte("dddd"))

	entries, err := client.List(context.Background(), testFolder)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	names := []string{entries[0].Name, entries[1].Name, entries[2].Name}
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, names)
	assert.Equal(t, int64(3), entries[0].Size)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), entries[0].ModifiedAt)

	// pageSize 2 over 3 entries means two list requests.
	assert.Len(t, fd.queries, 2)
}

func TestList_EmptyFolder(t *testing.T) {
	_, client := newFakeDrive(t)

	entries, err := client.List(context.Background(), testFolder)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestList_EscapesFolderID(t *testing.T) {
	fd, client := newFakeDrive(t)

	odd := `it's\here`
	fd.seed(odd, "x.bin", "application/octet-stream", []byte{1})

	entries, err := client.List(context.Background(), odd)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, `'it\'s\\here' in parents and trashed = false`, fd.queries[0])
}

func TestList_FolderFlag(t *testing.T) {
	fd, client := newFakeDrive(t)

	fd.seed(testFolder, "sub", FolderMimeType, nil)

	entries, err := client.List(context.Background(), testFolder)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsFolder)
}

func TestGet(t *testing.T) {
	fd, client := newFakeDrive(t)

	id := fd.seed(testFolder, "report.pdf", "application/pdf", []byte("%PDF-1.4"))

	entry, err := client.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, entry.ID)
	assert.Equal(t, "report.pdf", entry.Name)
	assert.Equal(t, "application/pdf", entry.MimeType)
	assert.Equal(t, int64(8), entry.Size)
	assert.Len(t, entry.MD5, 32)
}

func TestGet_NotFound(t *testing.T) {
	_, client := newFakeDrive(t)

	_, err := client.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "notFound", apiErr.Reason)
	assert.Equal(t, "getting file", apiErr.Op)
}

func TestCreate_UploadsContent(t *testing.T) {
	fd, client := newFakeDrive(t)

	payload := []byte("hello, drive")
	entry, err := client.Create(context.Background(), CreateRequest{
		Name:     "hello.txt",
		MimeType: "text/plain",
		ParentID: testFolder,
	}, bytes.NewReader(payload))
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "hello.txt", entry.Name)
	assert.Equal(t, int64(len(payload)), entry.Size)

	fd.mu.Lock()
	stored := fd.files[entry.ID]
	fd.mu.Unlock()

	require.NotNil(t, stored)
	assert.Equal(t, payload, stored.content)
	assert.Equal(t, []string{testFolder}, stored.meta.Parents)
}

func TestCreate_NilContent(t *testing.T) {
	fd, client := newFakeDrive(t)

	entry, err := client.Create(context.Background(), CreateRequest{
		Name:     "empty",
		ParentID: testFolder,
	}, nil)
	require.NoError(t, err)
	assert.Zero(t, entry.Size)
	assert.True(t, fd.has(entry.ID))
}

func TestDelete(t *testing.T) {
	fd, client := newFakeDrive(t)

	id := fd.seed(testFolder, "old.txt", "text/plain", []byte("old"))

	require.NoError(t, client.Delete(context.Background(), id))
	assert.False(t, fd.has(id))

	err := client.Delete(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpen_StreamsContent(t *testing.T) {
	fd, client := newFakeDrive(t)

	payload := bytes.Repeat([]byte("0123456789"), 1000)
	id := fd.seed(testFolder, "big.bin", "application/octet-stream", payload)

	rc, err := client.Open(context.Background(), id)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestOpen_NotFound(t *testing.T) {
	_, client := newFakeDrive(t)

	_, err := client.Open(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuota(t *testing.T) {
	fd, client := newFakeDrive(t)

	fd.quota = &drive.AboutStorageQuota{
		Limit:             15 << 30,
		Usage:             5 << 30,
		UsageInDrive:      4 << 30,
		UsageInDriveTrash: 1 << 20,
	}

	q, err := client.Quota(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(15<<30), q.Limit)
	assert.Equal(t, int64(5<<30), q.Usage)
	assert.Equal(t, int64(4<<30), q.UsageDrive)
	assert.Equal(t, int64(1<<20), q.UsageTrash)
}

func TestQuota_Unlimited(t *testing.T) {
	fd, client := newFakeDrive(t)

	fd.quota = &drive.AboutStorageQuota{Usage: 42}

	q, err := client.Quota(context.Background())
	require.NoError(t, err)
	assert.Zero(t, q.Limit)
	assert.Equal(t, int64(42), q.Usage)
}

func TestClassification_ByStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		reason string
		want   error
	}{
		{"bad request", http.StatusBadRequest, "invalid", ErrBadRequest},
		{"unauthorized", http.StatusUnauthorized, "authError", ErrUnauthorized},
		{"forbidden", http.StatusForbidden, "insufficientPermissions", ErrForbidden},
		{"rate limited 403", http.StatusForbidden, "userRateLimitExceeded", ErrThrottled},
		{"too many requests", http.StatusTooManyRequests, "rateLimitExceeded", ErrThrottled},
		{"server error", http.StatusInternalServerError, "backendError", ErrServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fd, client := newFakeDrive(t)
			fd.failStatus = tt.status
			fd.failReason = tt.reason

			_, err := client.List(context.Background(), testFolder)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestList_CanceledContext(t *testing.T) {
	_, client := newFakeDrive(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.List(ctx, testFolder)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestToEntry_BadModifiedTime(t *testing.T) {
	client := NewClient(nil, slog.Default())

	entry := client.toEntry(&drive.File{Id: "x", Name: "x", ModifiedTime: "yesterday"})
	assert.True(t, entry.ModifiedAt.IsZero())
}
