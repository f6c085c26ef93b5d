// Package memdrive is an in-memory stand-in for the Drive folder API. It
// mirrors the behavior of the real store that callers depend on: opaque random
// IDs, duplicate names within a folder, listing in insertion order, and
// 404-classified errors for unknown folders and files.
package memdrive

import (
	"bytes"
	"context"
	"crypto/md5" //nolint:gosec // mirrors Drive's md5Checksum
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tonimelisma/gdrive-go/internal/gdrive"
)

// Op names recorded in Drive.Calls.
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpDelete = "delete"
	OpOpen   = "open"
	OpQuota  = "quota"
)

type file struct {
	entry   gdrive.Entry
	parent  string
	content []byte
}

// Drive is safe for concurrent use. The zero value is not usable; call New.
type Drive struct {
	mu      sync.Mutex
	folders map[string]bool
	files   map[string]*file
	order   []string
	quota   gdrive.Quota
	calls   []string
	now     func() time.Time

	// Injected failures, returned by the matching operation when non-nil.
	ListErr   error
	GetErr    error
	CreateErr error
	DeleteErr error
	OpenErr   error
	QuotaErr  error
}

// New returns an empty drive containing the given folders.
func New(folders ...string) *Drive {
	d := &Drive{
		folders: make(map[string]bool),
		files:   make(map[string]*file),
		now:     time.Now,
	}

	for _, f := range folders {
		d.folders[f] = true
	}

	return d
}

// AddFolder registers an additional folder ID.
func (d *Drive) AddFolder(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.folders[id] = true
}

// Put stores a file directly, bypassing call recording and error injection.
// Returns the new ID.
func (d *Drive) Put(folder, name, mimeType string, content []byte) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.putLocked(folder, name, mimeType, content)
}

func (d *Drive) putLocked(folder, name, mimeType string, content []byte) string {
	id := uuid.NewString()
	sum := md5.Sum(content) //nolint:gosec // mirrors Drive's md5Checksum

	d.files[id] = &file{
		entry: gdrive.Entry{
			ID:         id,
			Name:       name,
			MimeType:   mimeType,
			Size:       int64(len(content)),
			MD5:        hex.EncodeToString(sum[:]),
			ModifiedAt: d.now().UTC(),
			IsFolder:   mimeType == gdrive.FolderMimeType,
		},
		parent:  folder,
		content: content,
	}
	d.order = append(d.order, id)

	return id
}

// SetQuota sets the values returned by Quota.
func (d *Drive) SetQuota(limit, usage int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.quota = gdrive.Quota{Limit: limit, Usage: usage, UsageDrive: usage}
}

// SetReportedMD5 overrides the checksum reported in a file's metadata.
func (d *Drive) SetReportedMD5(id, sum string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if f, ok := d.files[id]; ok {
		f.entry.MD5 = sum
	}
}

// SetReportedSize overrides the size reported in a file's metadata without
// touching its content.
func (d *Drive) SetReportedSize(id string, size int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if f, ok := d.files[id]; ok {
		f.entry.Size = size
	}
}

// Content returns a copy of a file's bytes.
func (d *Drive) Content(id string) ([]byte, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	f, ok := d.files[id]
	if !ok {
		return nil, false
	}

	return bytes.Clone(f.content), true
}

// Named returns the entries in folder whose name is exactly name.
func (d *Drive) Named(folder, name string) []gdrive.Entry {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []gdrive.Entry
	for _, f := range d.childrenLocked(folder) {
		if f.entry.Name == name {
			out = append(out, f.entry)
		}
	}

	return out
}

// Calls returns the operations performed so far, in order.
func (d *Drive) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]string(nil), d.calls...)
}

// ResetCalls clears the recorded operations.
func (d *Drive) ResetCalls() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls = nil
}

func (d *Drive) childrenLocked(folder string) []*file {
	var out []*file

	for _, id := range d.order {
		if f, ok := d.files[id]; ok && f.parent == folder {
			out = append(out, f)
		}
	}

	return out
}

// begin records the call and checks the context.
func (d *Drive) begin(ctx context.Context, op string) error {
	d.calls = append(d.calls, op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("memdrive: %s: %w", op, err)
	}

	return nil
}

func notFound(op, what string) error {
	return &gdrive.APIError{
		Op:         op,
		StatusCode: http.StatusNotFound,
		Reason:     "notFound",
		Message:    "File not found: " + what,
		Err:        gdrive.ErrNotFound,
	}
}

// List returns the entries in folder in insertion order.
func (d *Drive) List(ctx context.Context, folder string) ([]gdrive.Entry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.begin(ctx, OpList); err != nil {
		return nil, err
	}

	if d.ListErr != nil {
		return nil, d.ListErr
	}

	if !d.folders[folder] {
		return nil, notFound("listing folder", folder)
	}

	children := d.childrenLocked(folder)
	out := make([]gdrive.Entry, 0, len(children))

	for _, f := range children {
		out = append(out, f.entry)
	}

	return out, nil
}

// Get returns a file's metadata.
func (d *Drive) Get(ctx context.Context, id string) (*gdrive.Entry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.begin(ctx, OpGet); err != nil {
		return nil, err
	}

	if d.GetErr != nil {
		return nil, d.GetErr
	}

	f, ok := d.files[id]
	if !ok {
		return nil, notFound("getting file", id)
	}

	entry := f.entry

	return &entry, nil
}

// Create stores a new file read from content, which may be nil.
func (d *Drive) Create(ctx context.Context, req gdrive.CreateRequest, content io.Reader) (*gdrive.Entry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.begin(ctx, OpCreate); err != nil {
		return nil, err
	}

	if d.CreateErr != nil {
		return nil, d.CreateErr
	}

	if !d.folders[req.ParentID] {
		return nil, notFound("creating file", req.ParentID)
	}

	var data []byte
	if content != nil {
		var err error

		data, err = io.ReadAll(content)
		if err != nil {
			return nil, fmt.Errorf("memdrive: reading upload content: %w", err)
		}
	}

	id := d.putLocked(req.ParentID, req.Name, req.MimeType, data)
	entry := d.files[id].entry

	return &entry, nil
}

// Delete removes a file permanently.
func (d *Drive) Delete(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.begin(ctx, OpDelete); err != nil {
		return err
	}

	if d.DeleteErr != nil {
		return d.DeleteErr
	}

	if _, ok := d.files[id]; !ok {
		return notFound("deleting file", id)
	}

	delete(d.files, id)

	return nil
}

// Open returns a reader over a snapshot of the file's content.
func (d *Drive) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.begin(ctx, OpOpen); err != nil {
		return nil, err
	}

	if d.OpenErr != nil {
		return nil, d.OpenErr
	}

	f, ok := d.files[id]
	if !ok {
		return nil, notFound("downloading file", id)
	}

	return io.NopCloser(bytes.NewReader(bytes.Clone(f.content))), nil
}

// Quota returns the values set by SetQuota.
func (d *Drive) Quota(ctx context.Context) (*gdrive.Quota, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.begin(ctx, OpQuota); err != nil {
		return nil, err
	}

	if d.QuotaErr != nil {
		return nil, d.QuotaErr
	}

	q := d.quota

	return &q, nil
}
