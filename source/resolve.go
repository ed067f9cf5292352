package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/wallbase"
)

// Resolver turns a listing page URL into the URL of the full image.
type Resolver struct {
	Fetcher   wallbase.Fetcher
	Extractor wallbase.PageExtractor
	Logger    *slog.Logger
}

// Resolve fetches the listing page and decodes the embedded image URL.
// Errors keep their ETRANSPORT, EPARSE or EDECODE code.
func (r *Resolver) Resolve(ctx context.Context, listingURL string) (string, error) {
	html, err := r.Fetcher.Fetch(ctx, listingURL, nil)
	if err != nil {
		return "", fmt.Errorf("fetch listing %s: %w", listingURL, err)
	}

	src, err := r.Extractor.SourceURL(html)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", listingURL, err)
	}

	logger(r.Logger).Info("image src URL", "listing", listingURL, "src", src)
	return src, nil
}
