// Package imagecache keeps downloaded wallpapers on disk so repeated runs
// against the same URL do not hit the network.
package imagecache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	httputil "github.com/jmylchreest/tonal/internal/util/http"
)

// FetchFunc downloads url.
type FetchFunc func(ctx context.Context, url string, opts httputil.FetchOptions) ([]byte, error)

// Cache stores remote images under Dir, keyed by a hash of the URL.
type Cache struct {
	Dir string

	// Refresh re-downloads images that are already cached.
	Refresh bool

	fetch FetchFunc
}

// New returns a cache rooted at dir. An empty dir selects DefaultDir.
func New(dir string) (*Cache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return &Cache{Dir: dir, fetch: httputil.Fetch}, nil
}

// WithFetch replaces the download function, mainly for tests.
func (c *Cache) WithFetch(fetch FetchFunc) *Cache {
	c.fetch = fetch
	return c
}

// DefaultDir returns $XDG_CACHE_HOME/tonal/images, or ~/.cache/tonal/images.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "tonal", "images"), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to determine cache directory: %w", err)
	}
	return filepath.Join(home, ".cache", "tonal", "images"), nil
}

// Filename returns the deterministic cache filename for url: the first 16
// bytes of its SHA-256 in hex plus the URL's extension, .img when unknown.
func Filename(url string) string {
	hash := sha256.Sum256([]byte(url))

	ext := filepath.Ext(url)
	if idx := strings.IndexAny(ext, "?#"); idx != -1 {
		ext = ext[:idx]
	}
	if ext == "" || len(ext) > 5 || strings.ContainsRune(ext, '/') {
		ext = ".img"
	}

	return fmt.Sprintf("%x%s", hash[:16], strings.ToLower(ext))
}

// Get returns the local path of url, downloading it on a cache miss.
func (c *Cache) Get(ctx context.Context, url string) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", fmt.Errorf("invalid URL: must start with http:// or https://")
	}

	path := filepath.Join(c.Dir, Filename(url))
	if !c.Refresh {
		if info, err := os.Stat(path); err == nil && info.Size() > 0 {
			return path, nil
		}
	}

	fetch := c.fetch
	if fetch == nil {
		fetch = httputil.Fetch
	}
	data, err := fetch(ctx, url, httputil.FetchOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}

	if err := os.MkdirAll(c.Dir, 0o755); err != nil { // #nosec G301 - cache directory needs standard permissions
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	// Write to a temporary file first so a failed write never leaves a
	// truncated image behind for the next run.
	tmp, err := os.CreateTemp(c.Dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}

	return path, nil
}
