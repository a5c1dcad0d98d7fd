package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/labyrinth/pkg/cache"
	"github.com/matzehuels/labyrinth/pkg/config"
	errs "github.com/matzehuels/labyrinth/pkg/errors"
)

func TestNewCache(t *testing.T) {
	ctx := context.Background()

	t.Run("no-cache flag", func(t *testing.T) {
		ch, err := newCache(ctx, config.CacheConfig{Backend: config.BackendFile}, true)
		if err != nil {
			t.Fatalf("newCache: %v", err)
		}
		if _, ok := ch.(cache.NullCache); !ok {
			t.Errorf("newCache(noCache) = %T, want cache.NullCache", ch)
		}
	})

	t.Run("null backend", func(t *testing.T) {
		ch, err := newCache(ctx, config.CacheConfig{Backend: config.BackendNull}, false)
		if err != nil {
			t.Fatalf("newCache: %v", err)
		}
		if _, ok := ch.(cache.NullCache); !ok {
			t.Errorf("newCache(null) = %T, want cache.NullCache", ch)
		}
	})

	t.Run("file backend", func(t *testing.T) {
		dir := t.TempDir()
		ch, err := newCache(ctx, config.CacheConfig{Backend: config.BackendFile, Dir: dir}, false)
		if err != nil {
			t.Fatalf("newCache: %v", err)
		}
		fc, ok := ch.(*cache.FileCache)
		if !ok {
			t.Fatalf("newCache(file) = %T, want *cache.FileCache", ch)
		}
		if fc.Dir() != dir {
			t.Errorf("Dir() = %q, want %q", fc.Dir(), dir)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := newCache(ctx, config.CacheConfig{Backend: "tape"}, false)
		if !errs.Is(err, errs.ErrCodeInvalidConfig) {
			t.Errorf("newCache(tape) error = %v, want INVALID_CONFIG", err)
		}
	})
}

func TestCacheClearCommand(t *testing.T) {
	isolate(t)
	dir := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName)

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	for _, key := range []string{"a", "b", "c"} {
		if err := fc.Set(context.Background(), key, []byte(key), 0); err != nil {
			t.Fatalf("Set(%q): %v", key, err)
		}
	}

	var out bytes.Buffer
	uiOut = &out
	t.Cleanup(func() { uiOut = os.Stderr })

	if _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("Cleared 3 cached entries")) {
		t.Errorf("cache clear output = %q", out.String())
	}
	if _, ok, _ := fc.Get(context.Background(), "a"); ok {
		t.Error("entry still present after cache clear")
	}
}

func TestCachePathCommand(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName) + "\n"
	if out != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}
