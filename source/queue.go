package source

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/fwojciec/wallbase"
	"github.com/fwojciec/wallbase/bloom"
)

// halveThreshold is the queue length from which favorites-preference fills
// keep only half of the shuffled candidates.
const halveThreshold = 20

// duplicateRate is the false positive rate of the per-fill link set.
const duplicateRate = 0.0001

// Queue holds listing page URLs waiting to be downloaded.
// It is not safe for concurrent use; Source serializes access.
type Queue struct {
	Searcher  *Searcher
	Extractor wallbase.PageExtractor
	Params    wallbase.Params

	// BanList and Size are optional.
	BanList wallbase.BanList
	Size    *wallbase.SizeFilter

	PageSize int

	// FillGate is marked at the start of every fill. Optional.
	FillGate *Gate

	// Rand drives offset sampling and shuffling. Defaults to the
	// math/rand/v2 global source.
	Rand *rand.Rand

	Now    func() time.Time
	Logger *slog.Logger

	items []string
}

// Len returns the number of pending listing URLs.
func (q *Queue) Len() int {
	return len(q.items)
}

// Pop removes and returns one pending listing URL.
// The bool result is false if the queue is empty.
func (q *Queue) Pop() (string, bool) {
	n := len(q.items)
	if n == 0 {
		return "", false
	}
	link := q.items[n-1]
	q.items = q.items[:n-1]
	return link, true
}

// Fill searches the gallery and appends acceptable listing URLs.
// Per-thumbnail problems are counted and skipped; a failed search or an
// unreadable result page is returned as an error and leaves the queue as is.
func (q *Queue) Fill(ctx context.Context) (*wallbase.FillResult, error) {
	if q.FillGate != nil {
		q.FillGate.Mark(q.now())
	}

	log := logger(q.Logger)
	log.Info("filling wallbase queue", "params", q.Params)

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	opts := SearchOptions{PageSize: pageSize, Size: q.Size}

	html, err := q.Searcher.Search(ctx, q.Params, opts)
	if err != nil {
		return nil, err
	}

	result := &wallbase.FillResult{Skipped: make(map[wallbase.SkipReason]int)}
	preferFavs := q.Params.PreferFavs()

	var limit int
	if preferFavs {
		total, err := q.Extractor.ResultCount(html)
		if err != nil {
			return nil, err
		}
		favsCount, err := q.Params.FavsCount()
		if err != nil {
			return nil, err
		}
		log.Info("preferring the most liked images", "favs_count", favsCount, "total", total)

		// Random page within the top favsCount results.
		limit = min(total, favsCount)
		opts.Offset = q.intN(max(0, limit-pageSize) + 1)
		result.Total, result.Limit, result.Offset = total, limit, opts.Offset

		html, err = q.Searcher.Search(ctx, q.Params, opts)
		if err != nil {
			return nil, err
		}
	}

	thumbs, err := q.Extractor.Thumbnails(html)
	if err != nil {
		return nil, err
	}
	result.Candidates = len(thumbs)

	seen := bloom.NewLinkSet(uint(len(thumbs)), duplicateRate)
	for _, thumb := range thumbs {
		reason := q.admit(ctx, thumb, seen)
		if reason != wallbase.SkipNone {
			result.Skipped[reason]++
			log.Debug("skipping thumbnail", "link", thumb.Link, "reason", string(reason))
			continue
		}
		q.items = append(q.items, thumb.Link)
	}

	if preferFavs && len(q.items) > limit {
		q.items = q.items[:limit]
	}

	q.shuffle()

	// Large favorites pages keep only half.
	if preferFavs && len(q.items) >= halveThreshold {
		q.items = q.items[:len(q.items)/2]
	}

	result.Queued = len(q.items)
	log.Info("wallbase queue populated", "count", result.Queued, "candidates", result.Candidates)

	return result, nil
}

// admit decides whether a thumbnail belongs in the queue.
func (q *Queue) admit(ctx context.Context, thumb wallbase.Thumbnail, seen *bloom.LinkSet) wallbase.SkipReason {
	// An unknown resolution is not a reason to exclude.
	if thumb.HasResolution && !q.Size.Allows(thumb.Width, thumb.Height) {
		return wallbase.SkipTooSmall
	}
	if thumb.Link == "" {
		return wallbase.SkipNoLink
	}
	if q.BanList != nil {
		banned, err := q.BanList.IsBanned(ctx, thumb.Link)
		if err != nil {
			return wallbase.SkipBanCheck
		}
		if banned {
			return wallbase.SkipBanned
		}
	}
	if !seen.Add(thumb.Link) {
		return wallbase.SkipDuplicate
	}
	return wallbase.SkipNone
}

func (q *Queue) now() time.Time {
	if q.Now != nil {
		return q.Now()
	}
	return time.Now()
}

func (q *Queue) intN(n int) int {
	if q.Rand != nil {
		return q.Rand.IntN(n)
	}
	return rand.IntN(n)
}

func (q *Queue) shuffle() {
	swap := func(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }
	if q.Rand != nil {
		q.Rand.Shuffle(len(q.items), swap)
		return
	}
	rand.Shuffle(len(q.items), swap)
}
