package mock

import (
	"context"
	"net/url"

	"github.com/fwojciec/wallbase"
)

var _ wallbase.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of wallbase.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string, form url.Values) ([]byte, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string, form url.Values) ([]byte, error) {
	return f.FetchFn(ctx, url, form)
}
