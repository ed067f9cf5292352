package wallbase

// SkipReason explains why a thumbnail was not queued during a fill.
type SkipReason string

// Thumbnail outcomes.
const (
	SkipNone      SkipReason = ""
	SkipTooSmall  SkipReason = "too_small"
	SkipNoLink    SkipReason = "no_link"
	SkipBanned    SkipReason = "banned"
	SkipBanCheck  SkipReason = "ban_check_failed"
	SkipDuplicate SkipReason = "duplicate"
)

// FillResult summarizes one queue fill cycle.
type FillResult struct {
	// Candidates is the number of thumbnails found on the result page.
	Candidates int

	// Queued is the queue length after the fill.
	Queued int

	// Skipped counts thumbnails by the reason they were left out.
	Skipped map[SkipReason]int

	// Total, Limit and Offset are set in favorites-preference mode:
	// the site's result count, the sampling limit and the chosen offset.
	Total  int
	Limit  int
	Offset int
}

// Status is the terminal state of a download attempt.
type Status string

// Download statuses. Failures are reported as errors instead.
const (
	StatusDownloaded Status = "downloaded"
	StatusDeferred   Status = "deferred"
)

// Outcome is the result of one download attempt.
type Outcome struct {
	Status Status

	// Reason describes why the attempt was deferred.
	Reason string

	// Image is set when Status is StatusDownloaded.
	Image *Image
}
