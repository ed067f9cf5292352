package source_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/wallbase"
	"github.com/fwojciec/wallbase/mock"
	"github.com/fwojciec/wallbase/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// searchRecorder is a mock fetcher that records the search URLs it receives.
type searchRecorder struct {
	mock.Fetcher
	urls []string
}

func newSearchRecorder() *searchRecorder {
	r := &searchRecorder{}
	r.FetchFn = func(ctx context.Context, u string, form url.Values) ([]byte, error) {
		r.urls = append(r.urls, u)
		return []byte(u), nil
	}
	return r
}

// staticExtractor returns the same thumbnails and result count for any page.
func staticExtractor(total int, thumbs ...wallbase.Thumbnail) *mock.PageExtractor {
	return &mock.PageExtractor{
		ThumbnailsFn: func(html []byte) ([]wallbase.Thumbnail, error) {
			return thumbs, nil
		},
		ResultCountFn: func(html []byte) (int, error) {
			return total, nil
		},
	}
}

func thumb(link string, w, h int) wallbase.Thumbnail {
	return wallbase.Thumbnail{Link: link, Width: w, Height: h, HasResolution: true}
}

func manyThumbs(n int) []wallbase.Thumbnail {
	thumbs := make([]wallbase.Thumbnail, n)
	for i := range thumbs {
		thumbs[i] = thumb(fmt.Sprintf("http://wallbase.test/wallpaper/%d", i), 1920, 1080)
	}
	return thumbs
}

func drain(q *source.Queue) []string {
	var links []string
	for {
		link, ok := q.Pop()
		if !ok {
			return links
		}
		links = append(links, link)
	}
}

func TestQueue_Fill(t *testing.T) {
	t.Parallel()

	t.Run("keeps only thumbnails passing the size filter", func(t *testing.T) {
		t.Parallel()

		q := &source.Queue{
			Searcher: &source.Searcher{Fetcher: newSearchRecorder()},
			Extractor: staticExtractor(0,
				thumb("http://wallbase.test/wallpaper/small", 150, 150),
				thumb("http://wallbase.test/wallpaper/big", 1920, 1080),
			),
			Params: wallbase.ParseLocation("type:text;query:cats"),
			Size:   &wallbase.SizeFilter{MinWidth: 200, MinHeight: 200},
		}

		result, err := q.Fill(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, q.Len())
		assert.Equal(t, 2, result.Candidates)
		assert.Equal(t, 1, result.Skipped[wallbase.SkipTooSmall])
		assert.Equal(t, []string{"http://wallbase.test/wallpaper/big"}, drain(q))
	})

	t.Run("page without thumbnails leaves queue empty", func(t *testing.T) {
		t.Parallel()

		q := &source.Queue{
			Searcher:  &source.Searcher{Fetcher: newSearchRecorder()},
			Extractor: staticExtractor(0),
			Params:    wallbase.Params{},
		}

		result, err := q.Fill(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, q.Len())
		assert.Equal(t, 0, result.Queued)
	})

	t.Run("malformed resolution does not exclude thumbnail", func(t *testing.T) {
		t.Parallel()

		q := &source.Queue{
			Searcher: &source.Searcher{Fetcher: newSearchRecorder()},
			Extractor: staticExtractor(0,
				wallbase.Thumbnail{Link: "http://wallbase.test/wallpaper/abc"},
			),
			Params: wallbase.Params{},
			Size:   &wallbase.SizeFilter{MinWidth: 1920, MinHeight: 1080},
		}

		_, err := q.Fill(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"http://wallbase.test/wallpaper/abc"}, drain(q))
	})

	t.Run("skips thumbnails without link", func(t *testing.T) {
		t.Parallel()

		q := &source.Queue{
			Searcher: &source.Searcher{Fetcher: newSearchRecorder()},
			Extractor: staticExtractor(0,
				thumb("", 1920, 1080),
				thumb("http://wallbase.test/wallpaper/1", 1920, 1080),
			),
			Params: wallbase.Params{},
		}

		result, err := q.Fill(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, q.Len())
		assert.Equal(t, 1, result.Skipped[wallbase.SkipNoLink])
	})

	t.Run("skips banned links and failed ban checks", func(t *testing.T) {
		t.Parallel()

		bans := &mock.BanList{
			IsBannedFn: func(ctx context.Context, u string) (bool, error) {
				switch {
				case strings.HasSuffix(u, "/banned"):
					return true, nil
				case strings.HasSuffix(u, "/broken"):
					return false, errors.New("database locked")
				}
				return false, nil
			},
		}
		q := &source.Queue{
			Searcher: &source.Searcher{Fetcher: newSearchRecorder()},
			Extractor: staticExtractor(0,
				thumb("http://wallbase.test/wallpaper/banned", 1920, 1080),
				thumb("http://wallbase.test/wallpaper/broken", 1920, 1080),
				thumb("http://wallbase.test/wallpaper/ok", 1920, 1080),
			),
			Params:  wallbase.Params{},
			BanList: bans,
		}

		result, err := q.Fill(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"http://wallbase.test/wallpaper/ok"}, drain(q))
		assert.Equal(t, 1, result.Skipped[wallbase.SkipBanned])
		assert.Equal(t, 1, result.Skipped[wallbase.SkipBanCheck])
	})

	t.Run("drops duplicate links within one fill", func(t *testing.T) {
		t.Parallel()

		q := &source.Queue{
			Searcher: &source.Searcher{Fetcher: newSearchRecorder()},
			Extractor: staticExtractor(0,
				thumb("http://wallbase.test/wallpaper/1", 1920, 1080),
				thumb("http://wallbase.test/wallpaper/1", 1920, 1080),
				thumb("http://wallbase.test/wallpaper/2", 1920, 1080),
			),
			Params: wallbase.Params{},
		}

		result, err := q.Fill(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, q.Len())
		assert.Equal(t, 1, result.Skipped[wallbase.SkipDuplicate])
	})

	t.Run("allows duplicates across fills", func(t *testing.T) {
		t.Parallel()

		q := &source.Queue{
			Searcher:  &source.Searcher{Fetcher: newSearchRecorder()},
			Extractor: staticExtractor(0, thumb("http://wallbase.test/wallpaper/1", 1920, 1080)),
			Params:    wallbase.Params{},
		}

		_, err := q.Fill(context.Background())
		require.NoError(t, err)
		_, err = q.Fill(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 2, q.Len())
	})

	t.Run("issues a single search without favorites preference", func(t *testing.T) {
		t.Parallel()

		rec := newSearchRecorder()
		q := &source.Queue{
			Searcher:  &source.Searcher{Fetcher: rec, BaseURL: "http://wallbase.test"},
			Extractor: staticExtractor(0, manyThumbs(60)...),
			Params:    wallbase.ParseLocation("type:text;query:cats"),
		}

		_, err := q.Fill(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"http://wallbase.test/search"}, rec.urls)
		assert.Equal(t, 60, q.Len(), "no halving without favorites preference")
	})

	t.Run("favorites preference samples a window and halves large pages", func(t *testing.T) {
		t.Parallel()

		rec := newSearchRecorder()
		q := &source.Queue{
			Searcher:  &source.Searcher{Fetcher: rec, BaseURL: "http://wallbase.test"},
			Extractor: staticExtractor(12345, manyThumbs(60)...),
			Params:    wallbase.ParseLocation("order:favs;favs_count:500"),
			Rand:      rand.New(rand.NewPCG(1, 2)),
		}

		result, err := q.Fill(context.Background())

		require.NoError(t, err)
		require.Len(t, rec.urls, 2, "count search plus windowed search")
		assert.Equal(t, 12345, result.Total)
		assert.Equal(t, 500, result.Limit)
		assert.GreaterOrEqual(t, result.Offset, 0)
		assert.LessOrEqual(t, result.Offset, 500-60)
		if result.Offset > 0 {
			assert.Equal(t, fmt.Sprintf("http://wallbase.test/search/%d", result.Offset), rec.urls[1])
		}
		assert.Equal(t, 30, q.Len())
		assert.LessOrEqual(t, q.Len(), result.Candidates/2)
	})

	t.Run("favorites preference caps queue at favs_count", func(t *testing.T) {
		t.Parallel()

		q := &source.Queue{
			Searcher:  &source.Searcher{Fetcher: newSearchRecorder()},
			Extractor: staticExtractor(1000, manyThumbs(60)...),
			Params:    wallbase.ParseLocation("order:favs;favs_count:10"),
		}

		result, err := q.Fill(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, result.Offset, "window cannot move when limit is below page size")
		assert.Equal(t, 10, q.Len())
	})

	t.Run("favorites preference uses total when smaller than favs_count", func(t *testing.T) {
		t.Parallel()

		q := &source.Queue{
			Searcher:  &source.Searcher{Fetcher: newSearchRecorder()},
			Extractor: staticExtractor(5, manyThumbs(5)...),
			Params:    wallbase.ParseLocation("order:favs;favs_count:500"),
		}

		result, err := q.Fill(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 5, result.Limit)
		assert.Equal(t, 5, q.Len(), "small pages are not halved")
	})

	t.Run("favorites preference fails without result count", func(t *testing.T) {
		t.Parallel()

		ext := staticExtractor(0, manyThumbs(3)...)
		ext.ResultCountFn = func(html []byte) (int, error) {
			return 0, wallbase.Errorf(wallbase.EPARSE, "result counter not found")
		}
		q := &source.Queue{
			Searcher:  &source.Searcher{Fetcher: newSearchRecorder()},
			Extractor: ext,
			Params:    wallbase.ParseLocation("order:favs;favs_count:500"),
		}

		_, err := q.Fill(context.Background())

		assert.Equal(t, wallbase.EPARSE, wallbase.ErrorCode(err))
		assert.Equal(t, 0, q.Len())
	})

	t.Run("favorites preference fails without favs_count", func(t *testing.T) {
		t.Parallel()

		q := &source.Queue{
			Searcher:  &source.Searcher{Fetcher: newSearchRecorder()},
			Extractor: staticExtractor(100, manyThumbs(3)...),
			Params:    wallbase.ParseLocation("order:favs"),
		}

		_, err := q.Fill(context.Background())

		assert.Equal(t, wallbase.EINVALID, wallbase.ErrorCode(err))
	})

	t.Run("search failure propagates and still marks the fill gate", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2013, 5, 1, 12, 0, 0, 0, time.UTC)
		gate := source.NewGate(time.Minute)
		q := &source.Queue{
			Searcher: &source.Searcher{Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, u string, form url.Values) ([]byte, error) {
					return nil, wallbase.Errorf(wallbase.ETRANSPORT, "connection refused")
				},
			}},
			Extractor: staticExtractor(0),
			Params:    wallbase.Params{},
			FillGate:  gate,
			Now:       func() time.Time { return now },
		}

		_, err := q.Fill(context.Background())

		assert.Equal(t, wallbase.ETRANSPORT, wallbase.ErrorCode(err))
		assert.Equal(t, 0, q.Len())
		assert.False(t, gate.Allow(now))
	})

	t.Run("whole page parse failure propagates", func(t *testing.T) {
		t.Parallel()

		ext := staticExtractor(0)
		ext.ThumbnailsFn = func(html []byte) ([]wallbase.Thumbnail, error) {
			return nil, wallbase.Errorf(wallbase.EPARSE, "failed to parse HTML")
		}
		q := &source.Queue{
			Searcher:  &source.Searcher{Fetcher: newSearchRecorder()},
			Extractor: ext,
			Params:    wallbase.Params{},
		}

		_, err := q.Fill(context.Background())

		assert.Equal(t, wallbase.EPARSE, wallbase.ErrorCode(err))
	})
}

func TestQueue_Pop(t *testing.T) {
	t.Parallel()

	q := &source.Queue{
		Searcher:  &source.Searcher{Fetcher: newSearchRecorder()},
		Extractor: staticExtractor(0, manyThumbs(3)...),
		Params:    wallbase.Params{},
	}
	_, err := q.Fill(context.Background())
	require.NoError(t, err)

	links := drain(q)

	assert.Len(t, links, 3)
	assert.ElementsMatch(t, []string{
		"http://wallbase.test/wallpaper/0",
		"http://wallbase.test/wallpaper/1",
		"http://wallbase.test/wallpaper/2",
	}, links)
	_, ok := q.Pop()
	assert.False(t, ok)
}
