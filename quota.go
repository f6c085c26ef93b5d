package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newQuotaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quota",
		Short: "Show account storage usage",
		Args:  cobra.NoArgs,
		RunE:  runQuota,
	}
}

// quotaJSON is the JSON output schema for quota. A limit of 0 means the
// account has no storage limit; available is then omitted.
type quotaJSON struct {
	LimitBytes     int64  `json:"limit_bytes"`
	UsedBytes      int64  `json:"used_bytes"`
	TrashBytes     int64  `json:"trash_bytes"`
	AvailableBytes *int64 `json:"available_bytes,omitempty"`
	Unlimited      bool   `json:"unlimited"`
}

func runQuota(cmd *cobra.Command, _ []string) error {
	session, _, err := openSession(cmd.Context())
	if err != nil {
		return err
	}

	q, err := session.Quota(cmd.Context())
	if err != nil {
		return err
	}

	if flagJSON {
		out := quotaJSON{
			LimitBytes: q.LimitBytes,
			UsedBytes:  q.UsedBytes,
			TrashBytes: q.TrashBytes,
			Unlimited:  q.Unlimited(),
		}

		if !q.Unlimited() {
			avail := max(q.Available(), 0)
			out.AvailableBytes = &avail
		}

		return printJSON(out)
	}

	report, err := q.Report()
	if err != nil {
		return fmt.Errorf("formatting quota: %w", err)
	}

	printTable(os.Stdout, []string{"TOTAL", "USED", "AVAILABLE"},
		[][]string{{report.Limit, report.Used, report.Available}})

	return nil
}
