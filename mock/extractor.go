package mock

import "github.com/fwojciec/wallbase"

var _ wallbase.PageExtractor = (*PageExtractor)(nil)

// PageExtractor is a mock implementation of wallbase.PageExtractor.
type PageExtractor struct {
	ThumbnailsFn  func(html []byte) ([]wallbase.Thumbnail, error)
	ResultCountFn func(html []byte) (int, error)
	SourceURLFn   func(html []byte) (string, error)
}

func (e *PageExtractor) Thumbnails(html []byte) ([]wallbase.Thumbnail, error) {
	return e.ThumbnailsFn(html)
}

func (e *PageExtractor) ResultCount(html []byte) (int, error) {
	return e.ResultCountFn(html)
}

func (e *PageExtractor) SourceURL(html []byte) (string, error) {
	return e.SourceURLFn(html)
}
