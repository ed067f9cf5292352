package wallbase

import (
	"context"
	"net/url"
)

// Fetcher retrieves raw response bodies from the gallery.
type Fetcher interface {
	// Fetch requests the URL and returns the response body.
	// A nil form issues a plain GET; a non-nil form is sent as an
	// url-encoded POST body, which is how the gallery accepts searches.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string, form url.Values) ([]byte, error)
}
