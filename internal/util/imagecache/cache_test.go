package imagecache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	httputil "github.com/jmylchreest/tonal/internal/util/http"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		url     string
		wantExt string
	}{
		{"https://example.com/wall.png", ".png"},
		{"https://example.com/wall.JPG?w=1920", ".jpg"},
		{"https://example.com/wall.webp#frag", ".webp"},
		{"https://example.com/wallpaper", ".img"},
		{"https://example.com/a.b/wallpaper", ".img"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got := Filename(tt.url)
			if !strings.HasSuffix(got, tt.wantExt) {
				t.Errorf("Filename(%q) = %q, want suffix %q", tt.url, got, tt.wantExt)
			}
			if len(got) != 32+len(tt.wantExt) {
				t.Errorf("Filename(%q) = %q, want 32 hex chars", tt.url, got)
			}
			if Filename(tt.url) != got {
				t.Error("Filename is not deterministic")
			}
		})
	}

	if Filename("https://a/x.png") == Filename("https://b/x.png") {
		t.Error("different URLs share a cache file")
	}
}

func TestCacheGet(t *testing.T) {
	dir := t.TempDir()
	calls := 0
	cache, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	cache.WithFetch(func(_ context.Context, url string, _ httputil.FetchOptions) ([]byte, error) {
		calls++
		return []byte("image:" + url), nil
	})

	url := "https://example.com/wall.png"
	path, err := cache.Get(context.Background(), url)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("cached outside the cache dir: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "image:"+url {
		t.Fatalf("cached content = %q, %v", data, err)
	}

	if _, err := cache.Get(context.Background(), url); err != nil {
		t.Fatalf("second Get() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}

	cache.Refresh = true
	if _, err := cache.Get(context.Background(), url); err != nil {
		t.Fatalf("refresh Get() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("refresh did not re-download, calls = %d", calls)
	}
}

func TestCacheGetErrors(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("boom")
	cache, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	cache.WithFetch(func(context.Context, string, httputil.FetchOptions) ([]byte, error) {
		return nil, boom
	})

	if _, err := cache.Get(context.Background(), "ftp://example.com/x.png"); err == nil {
		t.Error("Get() accepted a non-HTTP URL")
	}
	if _, err := cache.Get(context.Background(), "https://example.com/x.png"); !errors.Is(err, boom) {
		t.Errorf("Get() error = %v, want wrapped fetch error", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("failed download left %d files behind", len(entries))
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")
	dir, err := DefaultDir()
	if err != nil {
		t.Fatalf("DefaultDir() error = %v", err)
	}
	if dir != filepath.Join("/tmp/cache", "tonal", "images") {
		t.Errorf("DefaultDir() = %q", dir)
	}
}
