// Package fs provides file-based storage for downloaded images.
package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/wallbase"
)

// FilenamePrefix is prepended to every saved file name.
const FilenamePrefix = "wallbase_"

// Filename converts an image URL to a local file name.
// Example: http://wallpapers.wallbase.cc/rozne/wallpaper-123.jpg → wallbase_wallpaper-123.jpg
func Filename(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", wallbase.Errorf(wallbase.EINVALID, "invalid image URL %q: %v", rawURL, err)
	}

	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		// No usable name in the URL; fall back to a stable hash of it.
		base = ComputeHash([]byte(rawURL))
	}

	return FilenamePrefix + base, nil
}

// ComputeHash returns the xxhash of b as a hex string.
func ComputeHash(b []byte) string {
	return fmt.Sprintf("%x", xxhash.Sum64(b))
}

// Ensure Saver implements wallbase.Saver at compile time.
var _ wallbase.Saver = (*Saver)(nil)

// Saver downloads images with a Fetcher and writes them to a directory.
type Saver struct {
	fetcher wallbase.Fetcher
	baseDir string
}

// NewSaver creates a new Saver that writes to the given base directory.
func NewSaver(fetcher wallbase.Fetcher, baseDir string) *Saver {
	return &Saver{fetcher: fetcher, baseDir: baseDir}
}

// Save downloads sourceURL and writes it to the base directory.
// An existing file with the same name is overwritten.
func (s *Saver) Save(ctx context.Context, originURL, sourceURL string) (*wallbase.Image, error) {
	name, err := Filename(sourceURL)
	if err != nil {
		return nil, err
	}

	b, err := s.fetcher.Fetch(ctx, sourceURL, nil)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, wallbase.Errorf(wallbase.EINVALID, "empty image at %s", sourceURL)
	}

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return nil, err
	}

	fullPath := filepath.Join(s.baseDir, name)
	if err := writeFileAtomic(fullPath, b); err != nil {
		return nil, err
	}

	return &wallbase.Image{
		OriginURL:   originURL,
		SourceURL:   sourceURL,
		Path:        fullPath,
		ContentHash: ComputeHash(b),
		Bytes:       len(b),
	}, nil
}

// writeFileAtomic writes b to a uniquely named partial file next to path and
// renames it into place, so concurrent saves of one name never interleave.
func writeFileAtomic(path string, b []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.part")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
