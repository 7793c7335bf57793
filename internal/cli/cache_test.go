package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/blockgraph/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := New(io.Discard, LogInfo).cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := filepath.Join(t.TempDir(), "custom-cache")
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := New(io.Discard, LogInfo).cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestCacheDirConfigured(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Cache.Dir = "/srv/blockgraph-cache"

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/srv/blockgraph-cache" {
		t.Errorf("cacheDir() = %q, want configured dir", dir)
	}
}

func TestDataDirSeparateFromCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")

	data, err := dataDir()
	if err != nil {
		t.Fatal(err)
	}
	cacheDir, _ := New(io.Discard, LogInfo).cacheDir()
	if strings.HasPrefix(data, cacheDir) {
		t.Errorf("dataDir() = %q must not live under the cache %q", data, cacheDir)
	}
}

func TestCacheClear(t *testing.T) {
	dir := t.TempDir()
	shard := filepath.Join(dir, "ab")
	if err := os.MkdirAll(shard, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"one.json", "two.json"} {
		if err := os.WriteFile(filepath.Join(shard, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	c := New(io.Discard, LogInfo)
	c.Config.Cache.Dir = dir
	cmd := c.cacheClearCommand()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir still has %d entries", len(entries))
	}
}

func TestNewCacheDisabled(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Cache.Disabled = true

	ch, err := c.newCache(t.Context(), false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ch.(*cache.NullCache); !ok {
		t.Errorf("newCache() = %T, want *cache.NullCache", ch)
	}
}
