package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tonimelisma/gdrive-go/internal/config"
	"github.com/tonimelisma/gdrive-go/internal/driveops"
	"github.com/tonimelisma/gdrive-go/internal/gdrive"
)

// newRemote builds the Drive client for a command. Tests replace it with an
// in-memory drive.
var newRemote = func(ctx context.Context, cfg *config.Resolved, logger *slog.Logger) (driveops.Remote, error) {
	creds, err := gdrive.ReadCredentials(cfg.CredentialsFile)
	if errors.Is(err, gdrive.ErrNoCredentials) {
		return nil, fmt.Errorf("%w; set credentials_file, %s, or --credentials", err, config.EnvCredentials)
	}

	if err != nil {
		return nil, err
	}

	srv, err := gdrive.NewService(ctx, creds)
	if err != nil {
		return nil, err
	}

	return gdrive.NewClient(srv, logger), nil
}

// openSession authenticates once and returns a Session configured from the
// resolved config, plus the logger it logs to.
func openSession(ctx context.Context) (*driveops.Session, *slog.Logger, error) {
	if resolvedCfg == nil {
		return nil, nil, fmt.Errorf("no configuration loaded")
	}

	logger := buildLogger()

	remote, err := newRemote(ctx, resolvedCfg, logger)
	if err != nil {
		return nil, nil, err
	}

	callTimeout := resolvedCfg.CallTimeout
	if callTimeout == 0 {
		callTimeout = -1 // explicit "0" in config disables the timeout
	}

	session, err := driveops.NewSession(remote, driveops.Options{
		CallTimeout:     callTimeout,
		TransferTimeout: resolvedCfg.TransferTimeout,
		DeletePolicy:    driveops.DeletePolicy(resolvedCfg.DeleteFailure),
		Logger:          logger,
	})
	if err != nil {
		return nil, nil, err
	}

	return session, logger, nil
}

// requireFolder returns the configured folder ID or explains how to set one.
func requireFolder() (string, error) {
	if resolvedCfg == nil || resolvedCfg.FolderID == "" {
		return "", fmt.Errorf("no folder configured; set folder_id, %s, or --folder", config.EnvFolder)
	}

	return resolvedCfg.FolderID, nil
}
