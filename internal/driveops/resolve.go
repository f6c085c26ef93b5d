package driveops

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tonimelisma/gdrive-go/internal/gdrive"
)

// List returns the non-trashed entries directly inside folder, in provider
// order.
func (s *Session) List(ctx context.Context, folder string) ([]gdrive.Entry, error) {
	if folder == "" {
		return nil, opErr("list", folder, ErrInvalidArgument, errors.New("folder ID must not be empty"))
	}

	entries, err := s.list(ctx, folder)
	if err != nil {
		return nil, opErr("list", folder, remoteKind(err), err)
	}

	return entries, nil
}

func (s *Session) list(ctx context.Context, folder string) ([]gdrive.Entry, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	return s.remote.List(ctx, folder)
}

// Find reports the ID of the first entry in folder named exactly name. An
// absent name is not an error: found is false and err is nil. The result is
// a snapshot and may be stale by the time it is used.
//
// When several entries share the name, the first in provider order wins.
// Provider order is not guaranteed stable.
func (s *Session) Find(ctx context.Context, folder, name string) (id string, found bool, err error) {
	if folder == "" || name == "" {
		return "", false, opErr("find", name, ErrInvalidArgument, errors.New("folder and name must not be empty"))
	}

	entries, err := s.list(ctx, folder)
	if err != nil {
		return "", false, opErr("find", name, remoteKind(err), err)
	}

	matches := 0

	for i := range entries {
		if entries[i].Name != name {
			continue
		}

		if matches == 0 {
			id = entries[i].ID
		}

		matches++
	}

	if matches > 1 {
		s.logger.Warn("duplicate names in folder, using first match",
			slog.String("folder_id", folder),
			slog.String("name", name),
			slog.Int("count", matches),
			slog.String("id", id),
		)
	}

	s.logger.Debug("existence check",
		slog.String("folder_id", folder),
		slog.String("name", name),
		slog.Bool("found", matches > 0),
	)

	return id, matches > 0, nil
}
