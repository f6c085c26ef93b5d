package driveops

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DeletePolicy decides what upload-and-replace does when deleting the
// existing entry fails.
type DeletePolicy string

const (
	// DeleteAbort stops before creating anything and reports ErrDeleteFailed.
	DeleteAbort DeletePolicy = "abort"
	// DeleteProceed creates the new entry anyway, leaving two entries with
	// the same name. The result carries the delete error.
	DeleteProceed DeletePolicy = "proceed"
)

// DefaultCallTimeout bounds a single metadata call when Options leaves
// CallTimeout unset.
const DefaultCallTimeout = 30 * time.Second

// Options configures a Session. The zero value is usable: 30s metadata
// timeout, no transfer timeout, abort on delete failure.
type Options struct {
	CallTimeout     time.Duration // list, get, delete, quota; negative = none
	TransferTimeout time.Duration // create with content, download stream; 0 = none
	DeletePolicy    DeletePolicy
	Logger          *slog.Logger
}

// Session runs folder operations against one Remote.
type Session struct {
	remote Remote
	opts   Options
	logger *slog.Logger
}

// NewSession validates opts and returns a Session bound to remote.
func NewSession(remote Remote, opts Options) (*Session, error) {
	if remote == nil {
		return nil, fmt.Errorf("driveops: remote must not be nil")
	}

	switch opts.DeletePolicy {
	case "":
		opts.DeletePolicy = DeleteAbort
	case DeleteAbort, DeleteProceed:
	default:
		return nil, fmt.Errorf("driveops: unknown delete policy %q", opts.DeletePolicy)
	}

	if opts.CallTimeout == 0 {
		opts.CallTimeout = DefaultCallTimeout
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		remote: remote,
		opts:   opts,
		logger: logger,
	}, nil
}

// DeletePolicy reports the effective delete policy.
func (s *Session) DeletePolicy() DeletePolicy {
	return s.opts.DeletePolicy
}

func (s *Session) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return withTimeout(ctx, s.opts.CallTimeout)
}

func (s *Session) transferContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return withTimeout(ctx, s.opts.TransferTimeout)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}

	return context.WithCancel(ctx)
}
