package driveops

import (
	"context"
	"fmt"

	"github.com/tonimelisma/gdrive-go/pkg/bytefmt"
)

// StorageQuota holds raw byte counts. LimitBytes is zero when the account
// has no storage limit.
type StorageQuota struct {
	LimitBytes int64
	UsedBytes  int64
	TrashBytes int64
}

// Available is LimitBytes minus UsedBytes. It is negative for an unlimited
// account and for one over its limit.
func (q StorageQuota) Available() int64 {
	return q.LimitBytes - q.UsedBytes
}

// Unlimited reports whether the provider reported no limit.
func (q StorageQuota) Unlimited() bool {
	return q.LimitBytes == 0
}

// QuotaReport is a StorageQuota rendered for humans.
type QuotaReport struct {
	Limit     string
	Used      string
	Available string
}

const unlimitedLabel = "unlimited"

// Report formats the quota with bytefmt. An account over its limit shows
// 0.00 B available.
func (q StorageQuota) Report() (QuotaReport, error) {
	used, err := bytefmt.Format(q.UsedBytes)
	if err != nil {
		return QuotaReport{}, fmt.Errorf("formatting used bytes: %w", err)
	}

	if q.Unlimited() {
		return QuotaReport{Limit: unlimitedLabel, Used: used, Available: unlimitedLabel}, nil
	}

	limit, err := bytefmt.Format(q.LimitBytes)
	if err != nil {
		return QuotaReport{}, fmt.Errorf("formatting limit: %w", err)
	}

	available, err := bytefmt.Format(max(q.Available(), 0))
	if err != nil {
		return QuotaReport{}, fmt.Errorf("formatting available bytes: %w", err)
	}

	return QuotaReport{Limit: limit, Used: used, Available: available}, nil
}

// Quota fetches the account storage quota. Formatting is left to Report so
// the raw numbers stay available.
func (s *Session) Quota(ctx context.Context) (*StorageQuota, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	q, err := s.remote.Quota(ctx)
	if err != nil {
		return nil, opErr("quota", "storage", ErrRemoteUnavailable, err)
	}

	return &StorageQuota{
		LimitBytes: q.Limit,
		UsedBytes:  q.Usage,
		TrashBytes: q.UsageTrash,
	}, nil
}
