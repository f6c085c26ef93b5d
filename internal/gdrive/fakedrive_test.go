package gdrive

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// fakeDrive emulates the subset of the Drive v3 REST surface used by Client:
// files.list, files.get (metadata and alt=media), files.create (multipart
// upload), files.delete, and about.get.
type fakeDrive struct {
	t *testing.T

	mu       sync.Mutex
	files    map[string]*fakeFile
	order    []string
	nextID   int
	pageSize int // forced page size, to exercise pagination

	quota *drive.AboutStorageQuota

	// failStatus, when non-zero, makes every request fail with that status.
	failStatus int
	failReason string

	queries  []string
	requests int
}

type fakeFile struct {
	meta    drive.File
	content []byte
}

var parentsQuery = regexp.MustCompile(`^'((?:[^'\\]|\\.)*)' in parents and trashed = false$`)

func newFakeDrive(t *testing.T) (*fakeDrive, *Client) {
	t.Helper()

	fd := &fakeDrive{
		t:        t,
		files:    make(map[string]*fakeFile),
		pageSize: 2,
	}

	srv := httptest.NewServer(http.HandlerFunc(fd.serve))
	t.Cleanup(srv.Close)

	svc, err := drive.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	return fd, NewClient(svc, slog.Default())
}

// seed adds a file directly to the fake store and returns its ID.
func (fd *fakeDrive) seed(parent, name, mimeType string, content []byte) string {
	fd.mu.Lock()
	defer fd.mu.Unlock()

	return fd.addLocked(drive.File{
		Name:     name,
		MimeType: mimeType,
		Parents:  []string{parent},
	}, content)
}

func (fd *fakeDrive) addLocked(meta drive.File, content []byte) string {
	fd.nextID++
	meta.Id = fmt.Sprintf("file-%d", fd.nextID)
	meta.Size = int64(len(content))
	sum := md5.Sum(content)
	meta.Md5Checksum = hex.EncodeToString(sum[:])
	meta.ModifiedTime = "2024-03-01T10:00:00Z"
	fd.files[meta.Id] = &fakeFile{meta: meta, content: content}
	fd.order = append(fd.order, meta.Id)

	return meta.Id
}

func (fd *fakeDrive) has(id string) bool {
	fd.mu.Lock()
	defer fd.mu.Unlock()

	_, ok := fd.files[id]

	return ok
}

func (fd *fakeDrive) serve(w http.ResponseWriter, r *http.Request) {
	fd.mu.Lock()
	defer fd.mu.Unlock()

	fd.requests++

	if fd.failStatus != 0 {
		writeAPIError(w, fd.failStatus, fd.failReason, "injected failure")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/")

	switch {
	case path == "about" && r.Method == http.MethodGet:
		fd.serveAbout(w)
	case strings.HasSuffix(path, "files") && r.Method == http.MethodPost:
		fd.serveCreate(w, r)
	case path == "files" && r.Method == http.MethodGet:
		fd.serveList(w, r)
	case strings.HasPrefix(path, "files/"):
		fd.serveFile(w, r, strings.TrimPrefix(path, "files/"))
	default:
		writeAPIError(w, http.StatusNotFound, "notFound", "no route for "+r.URL.Path)
	}
}

func (fd *fakeDrive) serveAbout(w http.ResponseWriter) {
	writeJSON(w, &drive.About{StorageQuota: fd.quota})
}

func (fd *fakeDrive) serveList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	fd.queries = append(fd.queries, q)

	m := parentsQuery.FindStringSubmatch(q)
	if m == nil {
		writeAPIError(w, http.StatusBadRequest, "invalid", "unsupported query "+q)
		return
	}

	parent := strings.NewReplacer(`\'`, `'`, `\\`, `\`).Replace(m[1])

	var matched []*drive.File
	for _, id := range fd.order {
		f := fd.files[id]
		for _, p := range f.meta.Parents {
			if p == parent {
				meta := f.meta
				matched = append(matched, &meta)
			}
		}
	}

	start := 0
	if tok := r.URL.Query().Get("pageToken"); tok != "" {
		n, err := strconv.Atoi(tok)
		require.NoError(fd.t, err)
		start = n
	}

	end := min(start+fd.pageSize, len(matched))

	out := &drive.FileList{Files: matched[start:end]}
	if end < len(matched) {
		out.NextPageToken = strconv.Itoa(end)
	}

	writeJSON(w, out)
}

func (fd *fakeDrive) serveFile(w http.ResponseWriter, r *http.Request, id string) {
	f, ok := fd.files[id]
	if !ok {
		writeAPIError(w, http.StatusNotFound, "notFound", "File not found: "+id)
		return
	}

	switch r.Method {
	case http.MethodGet:
		if r.URL.Query().Get("alt") == "media" {
			w.Header().Set("Content-Type", f.meta.MimeType)
			_, _ = w.Write(f.content)

			return
		}

		writeJSON(w, &f.meta)
	case http.MethodDelete:
		delete(fd.files, id)
		w.WriteHeader(http.StatusNoContent)
	default:
		writeAPIError(w, http.StatusMethodNotAllowed, "", "method not allowed")
	}
}

// serveCreate handles uploadType=multipart: a JSON metadata part followed by
// the media part.
func (fd *fakeDrive) serveCreate(w http.ResponseWriter, r *http.Request) {
	var meta drive.File
	var content []byte

	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	require.NoError(fd.t, err)

	if strings.HasPrefix(mediaType, "multipart/") {
		mr := multipart.NewReader(r.Body, params["boundary"])

		part, err := mr.NextPart()
		require.NoError(fd.t, err)
		require.NoError(fd.t, json.NewDecoder(part).Decode(&meta))

		part, err = mr.NextPart()
		require.NoError(fd.t, err)

		content, err = io.ReadAll(part)
		require.NoError(fd.t, err)
	} else {
		require.NoError(fd.t, json.NewDecoder(r.Body).Decode(&meta))
	}

	id := fd.addLocked(meta, content)
	created := fd.files[id].meta
	writeJSON(w, &created)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, reason, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":{"code":%d,"message":%q,"errors":[{"reason":%q,"message":%q}]}}`,
		status, message, reason, message)
}
