package mock

import (
	"context"

	"github.com/fwojciec/wallbase"
)

var _ wallbase.DownloadService = (*DownloadService)(nil)

// DownloadService is a mock implementation of wallbase.DownloadService.
type DownloadService struct {
	CreateDownloadFn func(ctx context.Context, d *wallbase.Download) error
	FindDownloadsFn  func(ctx context.Context, filter wallbase.DownloadFilter) ([]*wallbase.Download, error)
}

func (s *DownloadService) CreateDownload(ctx context.Context, d *wallbase.Download) error {
	return s.CreateDownloadFn(ctx, d)
}

func (s *DownloadService) FindDownloads(ctx context.Context, filter wallbase.DownloadFilter) ([]*wallbase.Download, error) {
	return s.FindDownloadsFn(ctx, filter)
}

var _ wallbase.BanService = (*BanService)(nil)

// BanService is a mock implementation of wallbase.BanService.
type BanService struct {
	IsBannedFn func(ctx context.Context, url string) (bool, error)
	BanFn      func(ctx context.Context, url string) error
	UnbanFn    func(ctx context.Context, url string) error
	FindBansFn func(ctx context.Context) ([]string, error)
}

func (s *BanService) IsBanned(ctx context.Context, url string) (bool, error) {
	return s.IsBannedFn(ctx, url)
}

func (s *BanService) Ban(ctx context.Context, url string) error {
	return s.BanFn(ctx, url)
}

func (s *BanService) Unban(ctx context.Context, url string) error {
	return s.UnbanFn(ctx, url)
}

func (s *BanService) FindBans(ctx context.Context) ([]string, error) {
	return s.FindBansFn(ctx)
}
