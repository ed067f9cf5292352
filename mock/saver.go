package mock

import (
	"context"

	"github.com/fwojciec/wallbase"
)

// Compile-time interface verification.
var (
	_ wallbase.Saver   = (*Saver)(nil)
	_ wallbase.BanList = (*BanList)(nil)
)

// Saver is a mock implementation of wallbase.Saver.
type Saver struct {
	SaveFn func(ctx context.Context, originURL, sourceURL string) (*wallbase.Image, error)
}

func (s *Saver) Save(ctx context.Context, originURL, sourceURL string) (*wallbase.Image, error) {
	return s.SaveFn(ctx, originURL, sourceURL)
}

// BanList is a mock implementation of wallbase.BanList.
type BanList struct {
	IsBannedFn func(ctx context.Context, url string) (bool, error)
}

func (b *BanList) IsBanned(ctx context.Context, url string) (bool, error) {
	return b.IsBannedFn(ctx, url)
}
