package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/facetgrid/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir == "" {
		t.Fatal("cacheDir() returned empty string")
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := filepath.Join(t.TempDir(), "custom-cache")
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestDisplayAddr(t *testing.T) {
	tests := map[string]string{
		":8080":          "localhost:8080",
		"127.0.0.1:9000": "127.0.0.1:9000",
		"":               "",
	}
	for in, want := range tests {
		if got := displayAddr(in); got != want {
			t.Errorf("displayAddr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestServeBackends(t *testing.T) {
	tests := []struct {
		opts         serveOpts
		cache, store string
	}{
		{serveOpts{}, "file", "memory"},
		{serveOpts{noCache: true, storeDir: "/srv/layouts"}, "disabled", "file (/srv/layouts)"},
		{serveOpts{redisURL: "redis://localhost", mongoURI: "mongodb://localhost", database: "fg"}, "redis", "mongo (fg)"},
	}
	for _, tt := range tests {
		if got := tt.opts.cacheBackend(); got != tt.cache {
			t.Errorf("cacheBackend() = %q, want %q", got, tt.cache)
		}
		if got := tt.opts.storeBackend(); got != tt.store {
			t.Errorf("storeBackend() = %q, want %q", got, tt.store)
		}
	}
}

func TestServeKeyer(t *testing.T) {
	if k := (serveOpts{}).keyer(); k != nil {
		t.Errorf("keyer without namespace = %v, want nil", k)
	}
	k := serveOpts{namespace: "staging"}.keyer()
	if got := k.LayoutKey("h", cache.LayoutKeyOpts{}); !strings.HasPrefix(got, "staging:layout:") {
		t.Errorf("scoped key = %q", got)
	}
}

func TestCacheCommands(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	dir := filepath.Join(xdg, appName)

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"layout:a", "artifact:b"} {
		if err := fc.Set(ctx, key, []byte("{}"), 0); err != nil {
			t.Fatal(err)
		}
	}

	c := New(&bytes.Buffer{}, LogInfo)

	var out bytes.Buffer
	path := c.cacheCommand()
	path.SetOut(&out)
	path.SetArgs([]string{"path"})
	if err := path.Execute(); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != dir {
		t.Errorf("cache path = %q, want %q", got, dir)
	}

	wipe := c.cacheCommand()
	wipe.SetArgs([]string{"clear"})
	if err := wipe.Execute(); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if _, hit, _ := fc.Get(ctx, "layout:a"); hit {
		t.Error("cache clear should remove cached layouts")
	}
}
