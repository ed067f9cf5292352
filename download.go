package wallbase

import (
	"context"
	"time"
)

// Download is a record of a saved image.
type Download struct {
	ID           string    `json:"id"`
	Location     string    `json:"location"`
	OriginURL    string    `json:"originUrl"`
	SourceURL    string    `json:"sourceUrl"`
	Path         string    `json:"path"`
	ContentHash  string    `json:"contentHash"`
	Bytes        int       `json:"bytes"`
	DownloadedAt time.Time `json:"downloadedAt"`
}

// Validate returns an error if the download contains invalid fields.
func (d *Download) Validate() error {
	if d.OriginURL == "" {
		return Errorf(EINVALID, "download origin URL required")
	}
	if d.SourceURL == "" {
		return Errorf(EINVALID, "download source URL required")
	}
	return nil
}

// DownloadFilter represents a filter for FindDownloads.
type DownloadFilter struct {
	OriginURL *string `json:"originUrl"`
	Location  *string `json:"location"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// DownloadService records and lists downloaded images.
type DownloadService interface {
	// CreateDownload records a download. ID and DownloadedAt are assigned
	// by the service.
	CreateDownload(ctx context.Context, d *Download) error

	// FindDownloads returns downloads matching the filter, newest first.
	FindDownloads(ctx context.Context, filter DownloadFilter) ([]*Download, error)
}

// BanService manages the persistent ban list.
type BanService interface {
	BanList

	// Ban adds url to the ban list. Banning twice is not an error.
	Ban(ctx context.Context, url string) error

	// Unban removes url from the ban list.
	// Returns ENOTFOUND if url is not banned.
	Unban(ctx context.Context, url string) error

	// FindBans lists all banned URLs in the order they were banned.
	FindBans(ctx context.Context) ([]string, error)
}
