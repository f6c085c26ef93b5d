package driveops

import (
	"errors"
	"fmt"

	"github.com/tonimelisma/gdrive-go/internal/gdrive"
)

// Failure kinds. Every error returned by a Session wraps exactly one of these.
var (
	ErrRemoteUnavailable = errors.New("remote unavailable")
	ErrNotFound          = errors.New("not found")
	ErrDeleteFailed      = errors.New("delete failed")
	ErrCreateFailed      = errors.New("create failed")
	ErrIO                = errors.New("local I/O error")
	ErrInvalidArgument   = errors.New("invalid argument")
)

// OpError records the operation, its target (a file name or ID), the failure
// kind, and the underlying cause. errors.Is matches both the kind and
// anything in the cause chain, e.g. gdrive.ErrThrottled.
type OpError struct {
	Op     string
	Target string
	Kind   error
	Err    error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %q: %v", e.Op, e.Target, e.Kind)
	}

	return fmt.Sprintf("%s %q: %v: %v", e.Op, e.Target, e.Kind, e.Err)
}

func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// KindOf returns the failure kind of err, or nil when err did not come from
// a Session.
func KindOf(err error) error {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}

	return nil
}

func opErr(op, target string, kind, err error) *OpError {
	return &OpError{Op: op, Target: target, Kind: kind, Err: err}
}

// remoteKind classifies a failed remote read.
func remoteKind(err error) error {
	if errors.Is(err, gdrive.ErrNotFound) {
		return ErrNotFound
	}

	return ErrRemoteUnavailable
}
