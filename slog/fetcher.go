// Package slog provides log/slog decorators for wallbase services.
package slog

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/wallbase"
)

// Ensure LoggingFetcher implements wallbase.Fetcher.
var _ wallbase.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   wallbase.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next wallbase.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the request.
func (f *LoggingFetcher) Fetch(ctx context.Context, rawURL string, form url.Values) (body []byte, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("fetch",
			"url", rawURL,
			"post", form != nil,
			"bytes", len(body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, rawURL, form)
}
