package wallbase

// Thumbnail is one entry of a search result page. It only lives for the
// duration of a queue fill.
type Thumbnail struct {
	// Link is the listing page URL. Empty when no link could be extracted.
	Link string

	// Width and Height are the displayed resolution.
	// Only meaningful when HasResolution is true.
	Width         int
	Height        int
	HasResolution bool
}

// PageExtractor pulls structured data out of gallery HTML.
// Each implementation targets one version of the site's markup so that a
// layout change is confined to a single type.
type PageExtractor interface {
	// Thumbnails returns every thumbnail block on a search result page.
	// A page without thumbnails yields an empty slice and no error.
	Thumbnails(html []byte) ([]Thumbnail, error)

	// ResultCount returns the total number of matches reported by a
	// search result page. Returns EPARSE if the counter is missing.
	ResultCount(html []byte) (int, error)

	// SourceURL returns the decoded image URL embedded in a listing page.
	// Returns EPARSE if the image container or token markers are missing
	// and EDECODE if the token cannot be decoded.
	SourceURL(html []byte) (string, error)
}
