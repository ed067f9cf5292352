package source

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/fwojciec/wallbase"
)

// Reasons reported with a deferred Outcome.
const (
	ReasonDownloadInterval = "download interval not elapsed"
	ReasonFillInterval     = "fill interval not elapsed"
	ReasonNoResults        = "no results"
)

// Config holds the collaborators and settings used to build a Source.
type Config struct {
	Fetcher   wallbase.Fetcher
	Extractor wallbase.PageExtractor
	Saver     wallbase.Saver

	// BanList and Size are optional.
	BanList wallbase.BanList
	Size    *wallbase.SizeFilter

	// BaseURL defaults to DefaultBaseURL; PageSize to DefaultPageSize.
	BaseURL  string
	PageSize int

	// DownloadGate spaces downloads. Pass the same Gate to every Source
	// that should share the interval. Nil disables the limit.
	DownloadGate *Gate

	// FillInterval is the minimum time between queue fills of one Source.
	FillInterval time.Duration

	Rand   *rand.Rand
	Now    func() time.Time
	Logger *slog.Logger
}

// Source downloads images for one location string, one at a time.
// Calls to DownloadOne are serialized.
type Source struct {
	location string

	queue        *Queue
	resolver     *Resolver
	saver        wallbase.Saver
	downloadGate *Gate
	fillGate     *Gate
	now          func() time.Time
	logger       *slog.Logger

	mu sync.Mutex
}

// New creates a Source for the given location string.
func New(location string, cfg Config) *Source {
	log := logger(cfg.Logger).With("location", location)

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	downloadGate := cfg.DownloadGate
	if downloadGate == nil {
		downloadGate = NewGate(0)
	}
	fillGate := NewGate(cfg.FillInterval)

	return &Source{
		location: location,
		queue: &Queue{
			Searcher:  &Searcher{Fetcher: cfg.Fetcher, BaseURL: cfg.BaseURL, Logger: log},
			Extractor: cfg.Extractor,
			Params:    wallbase.ParseLocation(location),
			BanList:   cfg.BanList,
			Size:      cfg.Size,
			PageSize:  cfg.PageSize,
			FillGate:  fillGate,
			Rand:      cfg.Rand,
			Now:       now,
			Logger:    log,
		},
		resolver:     &Resolver{Fetcher: cfg.Fetcher, Extractor: cfg.Extractor, Logger: log},
		saver:        cfg.Saver,
		downloadGate: downloadGate,
		fillGate:     fillGate,
		now:          now,
		logger:       log,
	}
}

// Location returns the location string the Source was created with.
func (s *Source) Location() string {
	return s.location
}

// Pending returns the number of queued listing URLs.
func (s *Source) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// DownloadOne downloads at most one image.
//
// It returns a deferred Outcome without side effects when the download
// interval has not elapsed, and a deferred Outcome when the queue is empty
// and cannot be refilled yet or the refill found nothing. The download
// interval is claimed right before a listing is popped, so failed resolves
// are paced like successful ones. A popped listing is never requeued.
func (s *Source) DownloadOne(ctx context.Context) (*wallbase.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.downloadGate.Allow(s.now()) {
		s.logger.Info("minimal interval between downloads not elapsed, skip this attempt",
			"interval", s.downloadGate.Interval())
		return deferred(ReasonDownloadInterval), nil
	}

	s.logger.Info("downloading an image from wallbase", "queue", s.queue.Len())

	if s.queue.Len() == 0 {
		if !s.fillGate.Allow(s.now()) {
			s.logger.Info("queue empty, but minimal interval between fill attempts not elapsed, will try again later",
				"interval", s.fillGate.Interval())
			return deferred(ReasonFillInterval), nil
		}
		if _, err := s.queue.Fill(ctx); err != nil {
			return nil, fmt.Errorf("fill queue: %w", err)
		}
	}

	if s.queue.Len() == 0 {
		s.logger.Info("queue still empty after fill request")
		return deferred(ReasonNoResults), nil
	}

	// Another Source sharing the gate may have downloaded since the check above.
	if !s.downloadGate.Take(s.now()) {
		s.logger.Info("download slot taken by another source, skip this attempt")
		return deferred(ReasonDownloadInterval), nil
	}

	listingURL, _ := s.queue.Pop()
	s.logger.Info("wallpaper URL", "url", listingURL)

	src, err := s.resolver.Resolve(ctx, listingURL)
	if err != nil {
		return nil, err
	}

	img, err := s.saver.Save(ctx, listingURL, src)
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", src, err)
	}

	return &wallbase.Outcome{Status: wallbase.StatusDownloaded, Image: img}, nil
}

func deferred(reason string) *wallbase.Outcome {
	return &wallbase.Outcome{Status: wallbase.StatusDeferred, Reason: reason}
}
