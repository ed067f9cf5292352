package source

import (
	"context"

	"github.com/fwojciec/wallbase"
)

// Validate reports whether location yields at least one thumbnail with a
// link. It runs a single search without pagination or size filter using the
// fetcher and extractor from cfg. Failures are logged and reported as false.
func Validate(ctx context.Context, cfg Config, location string) bool {
	log := logger(cfg.Logger).With("location", location)
	log.Info("validating wallbase location")

	searcher := &Searcher{Fetcher: cfg.Fetcher, BaseURL: cfg.BaseURL, Logger: log}
	html, err := searcher.Search(ctx, wallbase.ParseLocation(location), SearchOptions{PageSize: cfg.PageSize})
	if err != nil {
		log.Error("error while validating wallbase search", "err", err)
		return false
	}

	thumbs, err := cfg.Extractor.Thumbnails(html)
	if err != nil {
		log.Error("error while validating wallbase search", "err", err)
		return false
	}

	for _, thumb := range thumbs {
		if thumb.Link != "" {
			return true
		}
	}
	return false
}
