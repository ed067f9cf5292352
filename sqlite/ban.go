package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/wallbase"
)

var _ wallbase.BanService = (*BanService)(nil)

// BanService implements wallbase.BanService using SQLite.
type BanService struct {
	db *DB
}

// NewBanService creates a new BanService.
func NewBanService(db *DB) *BanService {
	return &BanService{db: db}
}

// IsBanned reports whether url is on the ban list.
func (s *BanService) IsBanned(ctx context.Context, url string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM bans WHERE url = ?`, url).Scan(&n)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Ban adds url to the ban list.
func (s *BanService) Ban(ctx context.Context, url string) error {
	if url == "" {
		return wallbase.Errorf(wallbase.EINVALID, "ban URL required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bans (url, created_at) VALUES (?, ?)
		ON CONFLICT(url) DO NOTHING
	`, url, time.Now().UTC().Format(timeLayout))
	return err
}

// Unban removes url from the ban list.
func (s *BanService) Unban(ctx context.Context, url string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM bans WHERE url = ?`, url)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return wallbase.Errorf(wallbase.ENOTFOUND, "URL not banned")
	}
	return nil
}

// FindBans lists banned URLs, oldest first.
func (s *BanService) FindBans(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT url FROM bans ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}
