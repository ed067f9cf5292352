// Package source implements the wallbase download pipeline: searching the
// gallery, keeping a queue of listing pages, resolving a listing into its
// image URL and pacing downloads.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/fwojciec/wallbase"
)

// DefaultBaseURL is the root of the gallery.
const DefaultBaseURL = "http://wallbase.cc"

// DefaultPageSize is the number of thumbnails requested per search page.
const DefaultPageSize = 60

// minFilterDimension is the smallest resolution the gallery accepts in a
// size filter.
const minFilterDimension = 100

// SearchOptions controls a single search request.
type SearchOptions struct {
	// Offset skips that many results. Zero requests the first page.
	Offset int

	// PageSize defaults to DefaultPageSize.
	PageSize int

	// Size restricts results to at least this resolution. Optional.
	Size *wallbase.SizeFilter
}

// Searcher builds gallery search requests from location parameters.
type Searcher struct {
	Fetcher wallbase.Fetcher
	BaseURL string
	Logger  *slog.Logger
}

// Request returns the URL and form body for a search.
// Returns EINVALID if the search mode needs a parameter that is missing.
func (s *Searcher) Request(params wallbase.Params, opts SearchOptions) (string, url.Values, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	form := url.Values{}
	form.Set("thpp", strconv.Itoa(pageSize))

	if opts.Size != nil {
		form.Set("res_opt", "gteq")
		form.Set("res", fmt.Sprintf("%dx%d",
			max(minFilterDimension, opts.Size.MinWidth),
			max(minFilterDimension, opts.Size.MinHeight)))
	}

	if v, ok := params.Get(wallbase.ParamNSFW); ok {
		form.Set("nsfw", v)
	}
	if v, ok := params.Get(wallbase.ParamBoard); ok {
		form.Set("board", v)
	}

	base := strings.TrimSuffix(s.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	var u string
	switch params.SearchType() {
	case wallbase.SearchText:
		query, ok := params.Get(wallbase.ParamQuery)
		if !ok {
			return "", nil, wallbase.Errorf(wallbase.EINVALID, "query is required for text search")
		}
		u = base + "/search"
		form.Set("query", query)
	case wallbase.SearchColor:
		color, ok := params.Get(wallbase.ParamColor)
		if !ok {
			return "", nil, wallbase.Errorf(wallbase.EINVALID, "color is required for color search")
		}
		u = base + "/search/color/" + url.PathEscape(color)
	default:
		u = base + "/search"
	}

	if opts.Offset > 0 {
		u += "/" + strconv.Itoa(opts.Offset)
	}

	if params.PreferFavs() {
		form.Set("orderby", "favs")
	} else {
		form.Set("orderby", "random")
	}

	return u, form, nil
}

// Search performs a search and returns the result page HTML.
func (s *Searcher) Search(ctx context.Context, params wallbase.Params, opts SearchOptions) ([]byte, error) {
	u, form, err := s.Request(params, opts)
	if err != nil {
		return nil, err
	}

	logger(s.Logger).Info("performing wallbase search", "url", u, "data", form.Encode())

	html, err := s.Fetcher.Fetch(ctx, u, form)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", u, err)
	}
	return html, nil
}

func logger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
