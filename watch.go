package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/tonimelisma/gdrive-go/internal/driveops"
)

const defaultSettle = 500 * time.Millisecond

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <local-path> [remote-name]",
		Short: "Upload a file and replace it remotely every time it changes",
		Long: `Watches a local file and runs upload-and-replace after each burst of
writes settles. Uploads run one at a time; content identical to the last
upload is skipped. Stops on Ctrl-C.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runWatch,
	}

	cmd.Flags().Duration("settle", defaultSettle, "quiet period after the last write before uploading")
	cmd.Flags().Bool("initial", true, "upload once at startup")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	folder, err := requireFolder()
	if err != nil {
		return err
	}

	settle, err := cmd.Flags().GetDuration("settle")
	if err != nil {
		return err
	}

	initial, err := cmd.Flags().GetBool("initial")
	if err != nil {
		return err
	}

	local, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}

	name := remoteName(local)
	if len(args) > 1 {
		name = args[1]
	}

	logger := buildLogger()

	ctx, stop := shutdownContext(cmd.Context(), logger)
	defer stop()

	session, _, err := openSession(ctx)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	// Watch the directory: editors often replace a file by renaming a
	// temporary over it, which drops a watch on the file itself.
	if err := w.Add(filepath.Dir(local)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(local), err)
	}

	u := &watchUploader{
		session: session,
		req:     driveops.UploadRequest{Folder: folder, Name: name, LocalPath: local},
		logger:  logger,
	}

	if initial {
		u.upload(ctx)
	}

	statusf("Watching %s (Ctrl-C to stop)\n", local)

	err = watchLoop(ctx, w.Events, w.Errors, local, settle, u.upload, logger)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// watchUploader runs upload-and-replace for one file, skipping content that
// matches the last successful upload.
type watchUploader struct {
	session  *driveops.Session
	req      driveops.UploadRequest
	logger   *slog.Logger
	lastHash string
}

func (u *watchUploader) upload(ctx context.Context) {
	sum, err := driveops.ComputeMD5(u.req.LocalPath)
	if err != nil {
		u.logger.Warn("cannot read watched file", slog.String("path", u.req.LocalPath), slog.String("error", err.Error()))
		return
	}

	if sum == u.lastHash {
		u.logger.Debug("content unchanged, skipping upload", slog.String("md5", sum))
		return
	}

	res, err := u.session.UploadAndReplace(ctx, u.req)
	if err != nil {
		u.logger.Error("upload failed",
			slog.String("name", u.req.Name),
			slog.String("outcome", res.Outcome.String()),
			slog.String("error", err.Error()),
		)

		return
	}

	u.lastHash = sum

	statusf("%s %s (%s)\n", res.Outcome, res.Name, res.ID)
}

// watchLoop calls onChange once the target path has seen no write or create
// event for settle. onChange runs on the loop goroutine, so calls never
// overlap. It returns ctx.Err() on cancellation or the first watcher error.
func watchLoop(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	target string,
	settle time.Duration,
	onChange func(context.Context),
	logger *slog.Logger,
) error {
	timer := time.NewTimer(settle)
	timer.Stop()

	defer timer.Stop()

	target = filepath.Clean(target)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}

			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}

			logger.Debug("change detected", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
			timer.Reset(settle)

		case err, ok := <-errs:
			if !ok {
				return nil
			}

			return fmt.Errorf("watcher: %w", err)

		case <-timer.C:
			onChange(ctx)
		}
	}
}
