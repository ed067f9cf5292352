package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wallbase"
)

// Ensure LoggingSaver implements wallbase.Saver.
var _ wallbase.Saver = (*LoggingSaver)(nil)

// LoggingSaver wraps a Saver with logging.
type LoggingSaver struct {
	next   wallbase.Saver
	logger *slog.Logger
}

// NewLoggingSaver creates a new LoggingSaver.
func NewLoggingSaver(next wallbase.Saver, logger *slog.Logger) *LoggingSaver {
	return &LoggingSaver{next: next, logger: logger}
}

// Save delegates to the wrapped saver and logs the result.
func (s *LoggingSaver) Save(ctx context.Context, originURL, sourceURL string) (img *wallbase.Image, err error) {
	defer func(begin time.Time) {
		if err != nil {
			s.logger.Error("save failed", "origin", originURL, "src", sourceURL, "err", err)
			return
		}
		s.logger.Info("saved image",
			"origin", originURL,
			"path", img.Path,
			"bytes", img.Bytes,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.Save(ctx, originURL, sourceURL)
}
