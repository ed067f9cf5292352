package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fwojciec/wallbase"
	"github.com/fwojciec/wallbase/fs"
	wbslog "github.com/fwojciec/wallbase/slog"
	"github.com/fwojciec/wallbase/source"
	"github.com/fwojciec/wallbase/sqlite"
	"golang.org/x/sync/errgroup"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	if c.Count < 1 {
		fmt.Fprintln(deps.Stderr, "error: --count must be at least 1")
		return wallbase.Errorf(wallbase.EINVALID, "--count must be at least 1")
	}

	var size *wallbase.SizeFilter
	if c.MinWidth > 0 || c.MinHeight > 0 {
		size = &wallbase.SizeFilter{MinWidth: c.MinWidth, MinHeight: c.MinHeight}
	}

	// Download interval is shared by all locations.
	gate := source.NewGate(c.DownloadInterval)
	out := &syncWriter{w: deps.Stdout}

	g, ctx := errgroup.WithContext(deps.Ctx)
	for _, loc := range c.Locations {
		var saver wallbase.Saver = fs.NewSaver(deps.Fetcher, c.Dir)
		if deps.Downloads != nil {
			saver = sqlite.NewRecordingSaver(saver, deps.Downloads, loc)
		}
		if deps.Logger != nil {
			saver = wbslog.NewLoggingSaver(saver, deps.Logger)
		}

		var bans wallbase.BanList
		if deps.Bans != nil {
			bans = deps.Bans
		}

		src := source.New(loc, source.Config{
			Fetcher:      deps.Fetcher,
			Extractor:    deps.Extractor,
			Saver:        saver,
			BanList:      bans,
			Size:         size,
			BaseURL:      deps.BaseURL,
			DownloadGate: gate,
			FillInterval: c.FillInterval,
			Logger:       deps.Logger,
		})

		g.Go(func() error {
			return c.drain(ctx, src, out, deps.Stderr)
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wallbase.ErrorMessage(err))
		return err
	}
	return nil
}

// drain calls DownloadOne until Count images were saved. Deferred attempts
// wait Poll before retrying. Errors and empty searches both count towards
// MaxErrors.
func (c *FetchCmd) drain(ctx context.Context, src *source.Source, stdout, stderr io.Writer) error {
	var saved, failed int
	for saved < c.Count {
		if err := ctx.Err(); err != nil {
			return err
		}

		outcome, err := src.DownloadOne(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failed++
			fmt.Fprintf(stderr, "%s: %v\n", src.Location(), err)
			if c.MaxErrors > 0 && failed >= c.MaxErrors {
				return fmt.Errorf("%s: giving up after %d errors: %w", src.Location(), failed, err)
			}
			if err := sleep(ctx, c.Poll); err != nil {
				return err
			}
			continue
		}

		switch outcome.Status {
		case wallbase.StatusDownloaded:
			saved++
			fmt.Fprintln(stdout, outcome.Image.Path)
		case wallbase.StatusDeferred:
			if outcome.Reason == source.ReasonNoResults {
				failed++
				if c.MaxErrors > 0 && failed >= c.MaxErrors {
					return wallbase.Errorf(wallbase.ENOTFOUND, "no results for location %q", src.Location())
				}
			}
			if err := sleep(ctx, c.Poll); err != nil {
				return err
			}
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// syncWriter serializes writes from concurrent drains.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
