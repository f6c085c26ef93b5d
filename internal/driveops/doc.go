// Package driveops implements the folder operations of gdrive-go on top of a
// Remote: existence checks, upload-and-replace, awaitable downloads, and the
// storage quota report. It owns the error taxonomy callers branch on (see
// OpError and KindOf) and the per-call timeouts.
//
// A Session is read-only after construction and serves one logical caller.
// Upload-and-replace is check-then-act: another actor creating the same name
// between the existence check and the create leaves two entries, and nothing
// here detects or repairs that. Callers serialize per (folder, name).
package driveops
