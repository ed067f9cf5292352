package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/wallbase"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := wallbase.DownloadFilter{Limit: c.Limit}
	if c.Location != "" {
		filter.Location = &c.Location
	}

	downloads, err := deps.Downloads.FindDownloads(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wallbase.ErrorMessage(err))
		return err
	}

	if len(downloads) == 0 {
		fmt.Fprintln(deps.Stdout, "No downloads yet. Use 'wallbase fetch' to download images.")
		return nil
	}

	for _, d := range downloads {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			d.DownloadedAt.Local().Format(time.DateTime), d.Path, formatBytes(d.Bytes), d.OriginURL)
	}
	return nil
}

// formatBytes formats a byte count in human-readable form.
func formatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
