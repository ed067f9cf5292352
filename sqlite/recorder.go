package sqlite

import (
	"context"
	"fmt"

	"github.com/fwojciec/wallbase"
)

var _ wallbase.Saver = (*RecordingSaver)(nil)

// RecordingSaver wraps a Saver and records each successful save in the
// download history.
type RecordingSaver struct {
	saver     wallbase.Saver
	downloads wallbase.DownloadService
	location  string
}

// NewRecordingSaver creates a RecordingSaver that tags records with location.
func NewRecordingSaver(saver wallbase.Saver, downloads wallbase.DownloadService, location string) *RecordingSaver {
	return &RecordingSaver{saver: saver, downloads: downloads, location: location}
}

// Save delegates to the wrapped saver and records the result.
// A failed save is not recorded.
func (r *RecordingSaver) Save(ctx context.Context, originURL, sourceURL string) (*wallbase.Image, error) {
	img, err := r.saver.Save(ctx, originURL, sourceURL)
	if err != nil {
		return nil, err
	}

	d := &wallbase.Download{
		Location:    r.location,
		OriginURL:   img.OriginURL,
		SourceURL:   img.SourceURL,
		Path:        img.Path,
		ContentHash: img.ContentHash,
		Bytes:       img.Bytes,
	}
	if err := r.downloads.CreateDownload(ctx, d); err != nil {
		return img, fmt.Errorf("record download: %w", err)
	}
	return img, nil
}
