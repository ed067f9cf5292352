// Package http provides an HTTP implementation of wallbase.Fetcher.
package http

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/wallbase"
	"golang.org/x/net/publicsuffix"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the client to the gallery.
const DefaultUserAgent = "wallbase-fetch/1.0"

// Ensure Fetcher implements wallbase.Fetcher at compile time.
var _ wallbase.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages and images over HTTP. Cookies set by the gallery
// (e.g. the purity/nsfw preference) are kept for the lifetime of the Fetcher.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	// cookiejar.New only fails on invalid options.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	f.client = &http.Client{
		Timeout: f.timeout,
		Jar:     jar,
	}

	return f
}

// Fetch retrieves the body at rawURL. A non-nil form is POSTed url-encoded.
// All failures are reported with code ETRANSPORT.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, form url.Values) ([]byte, error) {
	method := http.MethodGet
	var body io.Reader
	if form != nil {
		method = http.MethodPost
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, wallbase.Errorf(wallbase.ETRANSPORT, "invalid request for %s: %v", rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, wallbase.Errorf(wallbase.ETRANSPORT, "request %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, wallbase.Errorf(wallbase.ETRANSPORT, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wallbase.Errorf(wallbase.ETRANSPORT, "read %s: %v", rawURL, err)
	}

	return b, nil
}
