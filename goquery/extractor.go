// Package goquery implements wallbase.PageExtractor on top of goquery.
package goquery

import (
	"bytes"
	"encoding/base64"
	stdhtml "html"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wallbase"
)

var _ wallbase.PageExtractor = (*Extractor)(nil)

// Markers surrounding the encoded source URL inside the big image container.
const (
	tokenStart = "B('"
	tokenEnd   = "')"
)

// Extractor reads the classic wallbase.cc markup:
//
//   - search results: div.thumb blocks, each with span.res ("1920x1080")
//     and a.thlink pointing at the listing page
//   - result counter: the first text node of div.imgshow ("12,345")
//   - listing page: div#bigwall holding a script call B('<base64 url>')
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Thumbnails returns every thumbnail block on a search result page.
func (e *Extractor) Thumbnails(html []byte) ([]wallbase.Thumbnail, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	var thumbs []wallbase.Thumbnail
	doc.Find("div.thumb").Each(func(_ int, sel *goquery.Selection) {
		var thumb wallbase.Thumbnail

		res := sel.Find("span.res").First()
		if res.Length() > 0 {
			thumb.Width, thumb.Height, thumb.HasResolution = parseResolution(res.Text())
		}

		if href, ok := sel.Find("a.thlink").First().Attr("href"); ok {
			thumb.Link = strings.TrimSpace(href)
		}

		thumbs = append(thumbs, thumb)
	})

	return thumbs, nil
}

// ResultCount returns the number reported in the result counter.
func (e *Extractor) ResultCount(html []byte) (int, error) {
	doc, err := parse(html)
	if err != nil {
		return 0, err
	}

	counter := doc.Find("div.imgshow").First()
	if counter.Length() == 0 {
		return 0, wallbase.Errorf(wallbase.EPARSE, "result counter not found")
	}

	// Only the leading text node carries the number; nested elements hold labels.
	text := counter.Contents().First().Text()
	digits := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if fields := strings.Fields(digits); len(fields) > 0 {
		digits = fields[0]
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, wallbase.Errorf(wallbase.EPARSE, "invalid result count %q", text)
	}
	return n, nil
}

// SourceURL decodes the image URL embedded in a listing page.
func (e *Extractor) SourceURL(html []byte) (string, error) {
	doc, err := parse(html)
	if err != nil {
		return "", err
	}

	wall := doc.Find("div#bigwall").First()
	if wall.Length() == 0 {
		return "", wallbase.Errorf(wallbase.EPARSE, "big image container not found")
	}

	serialized, err := goquery.OuterHtml(wall)
	if err != nil {
		return "", wallbase.Errorf(wallbase.EPARSE, "failed to serialize big image container: %v", err)
	}

	// Outside of script elements the quotes come back entity-encoded.
	token, ok := between(stdhtml.UnescapeString(serialized), tokenStart, tokenEnd)
	if !ok {
		return "", wallbase.Errorf(wallbase.EPARSE, "image token markers not found")
	}

	return decodeToken(token)
}

func parse(html []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, wallbase.Errorf(wallbase.EPARSE, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// parseResolution parses "WxH". The bool is false for anything else.
func parseResolution(s string) (width, height int, ok bool) {
	w, h, found := strings.Cut(strings.TrimSpace(s), "x")
	if !found {
		return 0, 0, false
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return 0, 0, false
	}
	height, err = strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return 0, 0, false
	}
	return width, height, true
}

// between returns the text between the first start marker and the end
// marker that follows it.
func between(s, start, end string) (string, bool) {
	i := strings.Index(s, start)
	if i < 0 {
		return "", false
	}
	rest := s[i+len(start):]
	j := strings.Index(rest, end)
	if j < 0 {
		return "", false
	}
	return rest[:j], true
}

func decodeToken(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", wallbase.Errorf(wallbase.EDECODE, "empty image token")
	}

	b, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		// Some pages drop the padding.
		b, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(token, "="))
		if err != nil {
			return "", wallbase.Errorf(wallbase.EDECODE, "invalid image token: %v", err)
		}
	}

	src := strings.TrimSpace(string(b))
	if src == "" {
		return "", wallbase.Errorf(wallbase.EDECODE, "image token decoded to an empty URL")
	}
	return src, nil
}
