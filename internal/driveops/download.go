package driveops

import (
	"context"
	"crypto/md5" //nolint:gosec // compared against Drive's md5Checksum
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/tonimelisma/gdrive-go/internal/gdrive"
)

// DownloadResult reports a completed download.
type DownloadResult struct {
	ID    string
	Name  string
	Path  string
	Bytes int64
}

// Transfer is the handle of a download running in the background.
type Transfer struct {
	cancel context.CancelFunc
	done   chan struct{}
	result *DownloadResult
	err    error
}

// Wait blocks until the download finishes and returns its outcome. It may be
// called any number of times from any goroutine.
func (t *Transfer) Wait() (*DownloadResult, error) {
	<-t.done
	return t.result, t.err
}

// Done is closed when the download has finished.
func (t *Transfer) Done() <-chan struct{} {
	return t.done
}

// Cancel aborts the download. Wait then reports the cancellation.
func (t *Transfer) Cancel() {
	t.cancel()
}

// Download copies the content of file id to destPath and returns at once.
// The destination's parent directory must already exist. The file handle is
// closed on every exit path; a failed download may leave a partial file at
// destPath that callers must not trust.
func (s *Session) Download(ctx context.Context, id, destPath string) *Transfer {
	ctx, cancel := context.WithCancel(ctx)

	t := &Transfer{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.download(gctx, id, destPath)
		t.result = res

		return err
	})

	go func() {
		t.err = g.Wait()
		cancel()
		close(t.done)
	}()

	return t
}

func (s *Session) download(ctx context.Context, id, destPath string) (*DownloadResult, error) {
	if id == "" || destPath == "" {
		return nil, opErr("download", id, ErrInvalidArgument, errors.New("file ID and destination must not be empty"))
	}

	meta, err := s.stat(ctx, id)
	if err != nil {
		return nil, opErr("download", id, remoteKind(err), err)
	}

	if meta.IsFolder {
		return nil, opErr("download", meta.Name, ErrInvalidArgument, errors.New("is a folder"))
	}

	s.logger.Debug("starting download",
		slog.String("id", id),
		slog.String("name", meta.Name),
		slog.String("dest", destPath),
		slog.Int64("size", meta.Size),
	)

	tctx, cancel := s.transferContext(ctx)
	defer cancel()

	body, err := s.remote.Open(tctx, id)
	if err != nil {
		return nil, opErr("download", meta.Name, remoteKind(err), err)
	}
	defer body.Close()

	h := md5.New() //nolint:gosec // integrity check only

	n, err := copyToFile(destPath, io.TeeReader(body, h))
	if err != nil {
		return nil, opErr("download", meta.Name, downloadKind(err), err)
	}

	if meta.Size > 0 && n != meta.Size {
		return nil, opErr("download", meta.Name, ErrIO,
			fmt.Errorf("wrote %d bytes to %s, remote reports %d", n, destPath, meta.Size))
	}

	if sum := hex.EncodeToString(h.Sum(nil)); meta.MD5 != "" && sum != meta.MD5 {
		return nil, opErr("download", meta.Name, ErrIO,
			fmt.Errorf("md5 mismatch for %s: local %s, remote %s", destPath, sum, meta.MD5))
	}

	s.logger.Info("download complete",
		slog.String("name", meta.Name),
		slog.String("dest", destPath),
		slog.Int64("bytes", n),
	)

	return &DownloadResult{
		ID:    id,
		Name:  meta.Name,
		Path:  destPath,
		Bytes: n,
	}, nil
}

// Stat returns the metadata of file id.
func (s *Session) Stat(ctx context.Context, id string) (*gdrive.Entry, error) {
	if id == "" {
		return nil, opErr("stat", id, ErrInvalidArgument, errors.New("file ID must not be empty"))
	}

	entry, err := s.stat(ctx, id)
	if err != nil {
		return nil, opErr("stat", id, remoteKind(err), err)
	}

	return entry, nil
}

func (s *Session) stat(ctx context.Context, id string) (*gdrive.Entry, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	return s.remote.Get(ctx, id)
}

// sinkError marks a failure on the local side of the copy.
type sinkError struct{ err error }

func (e *sinkError) Error() string { return e.err.Error() }
func (e *sinkError) Unwrap() error { return e.err }

func downloadKind(err error) error {
	var se *sinkError
	if errors.As(err, &se) {
		return ErrIO
	}

	return ErrRemoteUnavailable
}

// sinkWriter tags write failures so they can be told apart from read
// failures on the remote stream.
type sinkWriter struct{ f *os.File }

func (w sinkWriter) Write(p []byte) (int, error) {
	n, err := w.f.Write(p)
	if err != nil {
		return n, &sinkError{err: err}
	}

	return n, nil
}

// copyToFile streams r into a new file at path, truncating any existing one.
func copyToFile(path string, r io.Reader) (int64, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644) //nolint:mnd // regular file perms
	if err != nil {
		return 0, &sinkError{err: err}
	}

	n, copyErr := io.Copy(sinkWriter{f: f}, r)

	if closeErr := f.Close(); closeErr != nil && copyErr == nil {
		return n, &sinkError{err: fmt.Errorf("closing %s: %w", path, closeErr)}
	}

	if copyErr != nil {
		return n, fmt.Errorf("copying to %s: %w", path, copyErr)
	}

	return n, nil
}
