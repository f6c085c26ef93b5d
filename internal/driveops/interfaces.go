package driveops

import (
	"context"
	"io"

	"github.com/tonimelisma/gdrive-go/internal/gdrive"
)

// Lister lists the direct children of a folder.
type Lister interface {
	List(ctx context.Context, folderID string) ([]gdrive.Entry, error)
}

// Getter fetches the metadata of one file.
type Getter interface {
	Get(ctx context.Context, fileID string) (*gdrive.Entry, error)
}

// Creator creates a file from streamed content.
type Creator interface {
	Create(ctx context.Context, req gdrive.CreateRequest, content io.Reader) (*gdrive.Entry, error)
}

// Deleter permanently removes a file.
type Deleter interface {
	Delete(ctx context.Context, fileID string) error
}

// ContentOpener streams a file's binary content.
type ContentOpener interface {
	Open(ctx context.Context, fileID string) (io.ReadCloser, error)
}

// QuotaFetcher reports the account storage quota.
type QuotaFetcher interface {
	Quota(ctx context.Context) (*gdrive.Quota, error)
}

// Remote is everything a Session needs. Satisfied by *gdrive.Client and
// *memdrive.Drive.
type Remote interface {
	Lister
	Getter
	Creator
	Deleter
	ContentOpener
	QuotaFetcher
}
