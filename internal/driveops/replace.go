package driveops

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/tonimelisma/gdrive-go/internal/gdrive"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// UploadRequest names a local file and where it goes. MimeType may be empty,
// in which case it is detected from the file (see DetectMIME).
type UploadRequest struct {
	Folder    string `validate:"required"`
	Name      string `validate:"required"`
	LocalPath string `validate:"required"`
	MimeType  string
}

// Outcome describes the remote state left by an upload.
type Outcome int

const (
	// OutcomeNone: nothing changed remotely.
	OutcomeNone Outcome = iota
	// OutcomeCreated: the name was absent and now has one entry.
	OutcomeCreated
	// OutcomeReplaced: the old entry was deleted and a new one created.
	OutcomeReplaced
	// OutcomeRemoved: the old entry was deleted but the create failed. The
	// name has no entry at all; the caller must retry.
	OutcomeRemoved
	// OutcomeDuplicated: the delete failed under DeleteProceed and the new
	// entry coexists with the old one.
	OutcomeDuplicated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeCreated:
		return "created"
	case OutcomeReplaced:
		return "replaced"
	case OutcomeRemoved:
		return "removed"
	case OutcomeDuplicated:
		return "duplicated"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ReplaceResult reports what UploadAndReplace did. It is returned on failure
// too, so callers can tell "nothing changed" from "old entry gone".
type ReplaceResult struct {
	Name       string
	Outcome    Outcome
	ID         string // new entry; empty unless created
	PreviousID string // entry found by the existence check, if any
	Entry      *gdrive.Entry
	DeleteErr  error // set for OutcomeDuplicated
}

// checkRequest validates req and fills in the MIME type.
func checkRequest(op string, req *UploadRequest) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]error, 0, len(verrs))

			for _, fe := range verrs {
				fields = append(fields, fmt.Errorf("%s must not be empty", fe.Field()))
			}

			err = errors.Join(fields...)
		}

		return opErr(op, req.Name, ErrInvalidArgument, err)
	}

	if req.MimeType == "" {
		mt, err := DetectMIME(req.LocalPath)
		if err != nil {
			return opErr(op, req.LocalPath, ErrIO, err)
		}

		req.MimeType = mt
	}

	return nil
}

// openSource validates req and opens the local file read-only. Nothing
// remote has been touched when this fails.
func openSource(op string, req *UploadRequest) (*os.File, error) {
	if err := checkRequest(op, req); err != nil {
		return nil, err
	}

	f, err := os.Open(req.LocalPath)
	if err != nil {
		return nil, opErr(op, req.LocalPath, ErrIO, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, opErr(op, req.LocalPath, ErrIO, err)
	}

	if info.IsDir() {
		f.Close()
		return nil, opErr(op, req.LocalPath, ErrInvalidArgument, errors.New("is a directory"))
	}

	return f, nil
}

// UploadAndReplace makes name in req.Folder refer to a fresh copy of
// req.LocalPath: existence check, delete of the existing entry if any, then
// create. The steps run strictly in sequence with at most one delete and one
// create. Replacing changes the entry ID.
//
// The result is non-nil even when err is non-nil; Outcome says what state the
// folder was left in.
func (s *Session) UploadAndReplace(ctx context.Context, req UploadRequest) (*ReplaceResult, error) {
	res := &ReplaceResult{Name: req.Name, Outcome: OutcomeNone}

	src, err := openSource("upload", &req)
	if err != nil {
		return res, err
	}
	defer src.Close()

	prevID, found, err := s.Find(ctx, req.Folder, req.Name)
	if err != nil {
		return res, err
	}

	if found {
		res.PreviousID = prevID

		if err := s.deleteExisting(ctx, prevID); err != nil {
			delErr := opErr("replace", req.Name, ErrDeleteFailed, err)

			if s.opts.DeletePolicy != DeleteProceed {
				return res, delErr
			}

			s.logger.Warn("delete of existing entry failed, uploading anyway",
				slog.String("name", req.Name),
				slog.String("id", prevID),
				slog.String("error", err.Error()),
			)

			res.DeleteErr = delErr
		}
	}

	entry, err := s.create(ctx, req, src)
	if err != nil {
		if found && res.DeleteErr == nil {
			res.Outcome = OutcomeRemoved

			s.logger.Error("existing entry deleted but upload failed, name now has no entry",
				slog.String("name", req.Name),
				slog.String("previous_id", prevID),
			)
		}

		return res, opErr("upload", req.Name, ErrCreateFailed, err)
	}

	res.ID = entry.ID
	res.Entry = entry

	switch {
	case !found:
		res.Outcome = OutcomeCreated
	case res.DeleteErr != nil:
		res.Outcome = OutcomeDuplicated
	default:
		res.Outcome = OutcomeReplaced
	}

	s.logger.Info("upload complete",
		slog.String("name", req.Name),
		slog.String("outcome", res.Outcome.String()),
		slog.String("id", res.ID),
		slog.String("previous_id", res.PreviousID),
	)

	return res, nil
}

// deleteExisting removes the entry found by the existence check. An entry
// that disappeared in the meantime counts as deleted.
func (s *Session) deleteExisting(ctx context.Context, id string) error {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	err := s.remote.Delete(ctx, id)
	if errors.Is(err, gdrive.ErrNotFound) {
		s.logger.Debug("existing entry already gone", slog.String("id", id))
		return nil
	}

	return err
}

func (s *Session) create(ctx context.Context, req UploadRequest, content io.Reader) (*gdrive.Entry, error) {
	ctx, cancel := s.transferContext(ctx)
	defer cancel()

	return s.remote.Create(ctx, gdrive.CreateRequest{
		Name:     req.Name,
		MimeType: req.MimeType,
		ParentID: req.Folder,
	}, content)
}

// Upload creates a new entry without checking for an existing one. The
// folder may end up with several entries of the same name.
func (s *Session) Upload(ctx context.Context, req UploadRequest) (*gdrive.Entry, error) {
	src, err := openSource("upload", &req)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	entry, err := s.create(ctx, req, src)
	if err != nil {
		return nil, opErr("upload", req.Name, ErrCreateFailed, err)
	}

	return entry, nil
}

// Delete permanently removes the entry with the given ID.
func (s *Session) Delete(ctx context.Context, id string) error {
	if id == "" {
		return opErr("delete", id, ErrInvalidArgument, errors.New("file ID must not be empty"))
	}

	ctx, cancel := s.callContext(ctx)
	defer cancel()

	if err := s.remote.Delete(ctx, id); err != nil {
		kind := ErrDeleteFailed
		if errors.Is(err, gdrive.ErrNotFound) {
			kind = ErrNotFound
		}

		return opErr("delete", id, kind, err)
	}

	return nil
}

// Remove deletes the first entry in folder named name and returns its ID.
// An absent name is ErrNotFound.
func (s *Session) Remove(ctx context.Context, folder, name string) (string, error) {
	id, found, err := s.Find(ctx, folder, name)
	if err != nil {
		return "", err
	}

	if !found {
		return "", opErr("remove", name, ErrNotFound, nil)
	}

	if err := s.Delete(ctx, id); err != nil {
		return "", err
	}

	return id, nil
}
