package fs_test

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/wallbase"
	"github.com/fwojciec/wallbase/fs"
	"github.com/fwojciec/wallbase/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "uses last path segment",
			url:  "http://wallpapers.wallbase.cc/rozne/wallpaper-123.jpg",
			want: "wallbase_wallpaper-123.jpg",
		},
		{
			name: "ignores query string",
			url:  "http://wallpapers.wallbase.cc/high-resolution/wallpaper-9.png?v=2",
			want: "wallbase_wallpaper-9.png",
		},
		{
			name: "ignores fragment",
			url:  "http://wallpapers.wallbase.cc/a/b.jpg#top",
			want: "wallbase_b.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.Filename(tt.url)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("falls back to hash when path is empty", func(t *testing.T) {
		t.Parallel()

		got, err := fs.Filename("http://wallpapers.wallbase.cc/")

		require.NoError(t, err)
		assert.Equal(t, "wallbase_"+fs.ComputeHash([]byte("http://wallpapers.wallbase.cc/")), got)
	})

	t.Run("rejects invalid URL", func(t *testing.T) {
		t.Parallel()

		_, err := fs.Filename("http://[::1")

		assert.Equal(t, wallbase.EINVALID, wallbase.ErrorCode(err))
	})
}

func TestSaver_Save(t *testing.T) {
	t.Parallel()

	t.Run("writes image bytes to base directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "wallpapers")
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, u string, form url.Values) ([]byte, error) {
				assert.Equal(t, "http://img.wallbase.test/rozne/wallpaper-1.jpg", u)
				return []byte("JPEGDATA"), nil
			},
		}

		s := fs.NewSaver(fetcher, dir)
		img, err := s.Save(context.Background(), "http://wallbase.test/wallpaper/1", "http://img.wallbase.test/rozne/wallpaper-1.jpg")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "wallbase_wallpaper-1.jpg"), img.Path)
		assert.Equal(t, "http://wallbase.test/wallpaper/1", img.OriginURL)
		assert.Equal(t, 8, img.Bytes)
		assert.Equal(t, fs.ComputeHash([]byte("JPEGDATA")), img.ContentHash)

		content, err := os.ReadFile(img.Path)
		require.NoError(t, err)
		assert.Equal(t, "JPEGDATA", string(content))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasSuffix(e.Name(), ".part"), "no partial files left behind")
		}
	})

	t.Run("propagates fetch error without writing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, u string, form url.Values) ([]byte, error) {
				return nil, wallbase.Errorf(wallbase.ETRANSPORT, "HTTP 404")
			},
		}

		_, err := fs.NewSaver(fetcher, dir).Save(context.Background(), "o", "http://img.wallbase.test/a.jpg")

		assert.Equal(t, wallbase.ETRANSPORT, wallbase.ErrorCode(err))
		entries, _ := os.ReadDir(dir)
		assert.Empty(t, entries)
	})

	t.Run("rejects empty body", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, u string, form url.Values) ([]byte, error) {
				return nil, nil
			},
		}

		_, err := fs.NewSaver(fetcher, t.TempDir()).Save(context.Background(), "o", "http://img.wallbase.test/a.jpg")

		assert.Equal(t, wallbase.EINVALID, wallbase.ErrorCode(err))
	})
}
