package main_test

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/fwojciec/wallbase/mock"
)

const galleryBase = "http://gallery.test"

// testContext returns a background context for tests.
func testContext() context.Context {
	return context.Background()
}

// gallery serves search results, listing pages and image bytes for a fake
// wallbase site. Listing IDs are the thumbnails returned by every search.
type gallery struct {
	ids []string

	// failListings makes listing page fetches fail.
	failListings bool

	mu       sync.Mutex
	searches []string
}

func (g *gallery) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, rawURL string, form url.Values) ([]byte, error) {
			switch {
			case strings.HasPrefix(rawURL, galleryBase+"/search"):
				g.mu.Lock()
				g.searches = append(g.searches, rawURL+"?"+form.Encode())
				g.mu.Unlock()
				return []byte(g.searchPage()), nil
			case strings.HasPrefix(rawURL, galleryBase+"/wallpaper/"):
				if g.failListings {
					return nil, errors.New("connection reset")
				}
				id := strings.TrimPrefix(rawURL, galleryBase+"/wallpaper/")
				token := base64.StdEncoding.EncodeToString([]byte("http://img.test/" + id + ".jpg"))
				return []byte(`<html><body><div id="bigwall"><script>B('` + token + `')</script></div></body></html>`), nil
			case strings.HasPrefix(rawURL, "http://img.test/"):
				return []byte("image:" + rawURL), nil
			}
			return nil, fmt.Errorf("unexpected fetch %s", rawURL)
		},
	}
}

func (g *gallery) searchPage() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<html><body><div class="imgshow">%d wallpapers</div>`, len(g.ids))
	for _, id := range g.ids {
		fmt.Fprintf(&b, `<div class="thumb"><a class="thlink" href="%s/wallpaper/%s"></a><span class="res">1920x1080</span></div>`,
			galleryBase, id)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

func (g *gallery) searchCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.searches)
}
