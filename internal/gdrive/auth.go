package gdrive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// userAgent identifies gdrive-go to the Drive API.
const userAgent = "gdrive-go/0.1"

// ErrNoCredentials is returned when the credentials file does not exist.
var ErrNoCredentials = errors.New("gdrive: credentials file not found")

// ReadCredentials loads a credentials payload (service-account key or
// authorized-user JSON) from path.
func ReadCredentials(path string) ([]byte, error) {
	if path == "" {
		return nil, ErrNoCredentials
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoCredentials, path)
	}

	if err != nil {
		return nil, fmt.Errorf("gdrive: reading credentials %s: %w", path, err)
	}

	return data, nil
}

// NewService builds an authenticated Drive service with full read/write
// scope from a credentials payload. Extra options are applied last, so
// callers (tests) can override the endpoint or HTTP client.
func NewService(ctx context.Context, credentialsJSON []byte, opts ...option.ClientOption) (*drive.Service, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("gdrive: parsing credentials: %w", err)
	}

	all := make([]option.ClientOption, 0, len(opts)+2)
	all = append(all, option.WithCredentials(creds), option.WithUserAgent(userAgent))
	all = append(all, opts...)

	srv, err := drive.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("gdrive: creating drive service: %w", err)
	}

	return srv, nil
}
