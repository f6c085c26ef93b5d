package gdrive

import (
	"context"
	"log/slog"
)

// Quota returns the storage quota of the authenticated account.
func (c *Client) Quota(ctx context.Context) (*Quota, error) {
	about, err := c.srv.About.Get().Fields("storageQuota").Context(ctx).Do()
	if err != nil {
		return nil, classify("fetching storage quota", err)
	}

	q := &Quota{}
	if sq := about.StorageQuota; sq != nil {
		q.Limit = sq.Limit
		q.Usage = sq.Usage
		q.UsageDrive = sq.UsageInDrive
		q.UsageTrash = sq.UsageInDriveTrash
	}

	c.logger.Debug("fetched storage quota",
		slog.Int64("limit", q.Limit),
		slog.Int64("usage", q.Usage),
	)

	return q, nil
}
