package wallbase

import "context"

// Image describes a wallpaper that has been saved locally.
type Image struct {
	OriginURL   string `json:"originUrl"`
	SourceURL   string `json:"sourceUrl"`
	Path        string `json:"path"`
	ContentHash string `json:"contentHash"`
	Bytes       int    `json:"bytes"`
}

// Saver stores the image found at sourceURL. originURL is the listing page
// the image was resolved from.
type Saver interface {
	Save(ctx context.Context, originURL, sourceURL string) (*Image, error)
}

// SizeFilter holds the minimum accepted image dimensions.
type SizeFilter struct {
	MinWidth  int
	MinHeight int
}

// Allows reports whether an image of the given size passes the filter.
// A nil filter allows everything.
func (f *SizeFilter) Allows(width, height int) bool {
	if f == nil {
		return true
	}
	return width >= f.MinWidth && height >= f.MinHeight
}

// BanList reports whether a listing URL has been banned by the user.
type BanList interface {
	IsBanned(ctx context.Context, url string) (bool, error)
}

// BanSet is an in-memory BanList.
type BanSet map[string]struct{}

// NewBanSet returns a BanSet containing urls.
func NewBanSet(urls ...string) BanSet {
	s := make(BanSet, len(urls))
	for _, u := range urls {
		s[u] = struct{}{}
	}
	return s
}

// IsBanned implements BanList.
func (s BanSet) IsBanned(_ context.Context, url string) (bool, error) {
	_, ok := s[url]
	return ok, nil
}
