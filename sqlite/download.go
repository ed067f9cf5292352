package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/wallbase"
	"github.com/google/uuid"
)

var _ wallbase.DownloadService = (*DownloadService)(nil)

// DownloadService implements wallbase.DownloadService using SQLite.
type DownloadService struct {
	db *DB
}

// NewDownloadService creates a new DownloadService.
func NewDownloadService(db *DB) *DownloadService {
	return &DownloadService{db: db}
}

// CreateDownload records a download with a generated ID and timestamp.
func (s *DownloadService) CreateDownload(ctx context.Context, d *wallbase.Download) error {
	if err := d.Validate(); err != nil {
		return err
	}

	d.ID = uuid.New().String()
	d.DownloadedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO downloads (id, location, origin_url, source_url, path, content_hash, bytes, downloaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, d.ID, d.Location, d.OriginURL, d.SourceURL, d.Path, d.ContentHash, d.Bytes,
		d.DownloadedAt.Format(timeLayout))

	return err
}

// FindDownloads retrieves downloads matching the filter, newest first.
func (s *DownloadService) FindDownloads(ctx context.Context, filter wallbase.DownloadFilter) ([]*wallbase.Download, error) {
	var query strings.Builder
	query.WriteString(`
		SELECT id, location, origin_url, source_url, path, content_hash, bytes, downloaded_at
		FROM downloads
		WHERE 1=1
	`)

	var args []any
	if filter.OriginURL != nil {
		query.WriteString(" AND origin_url = ?")
		args = append(args, *filter.OriginURL)
	}
	if filter.Location != nil {
		query.WriteString(" AND location = ?")
		args = append(args, *filter.Location)
	}

	query.WriteString(" ORDER BY rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var downloads []*wallbase.Download
	for rows.Next() {
		var d wallbase.Download
		var downloadedAt string

		if err := rows.Scan(&d.ID, &d.Location, &d.OriginURL, &d.SourceURL, &d.Path,
			&d.ContentHash, &d.Bytes, &downloadedAt); err != nil {
			return nil, err
		}

		d.DownloadedAt, err = parseTime(downloadedAt, "downloaded_at")
		if err != nil {
			return nil, err
		}

		downloads = append(downloads, &d)
	}

	return downloads, rows.Err()
}
