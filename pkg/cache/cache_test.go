package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func init() {
	retryBaseDelay = time.Millisecond
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Errorf("Get = %q, %v, want miss", data, hit)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get on empty cache should miss")
	}

	if err := c.Set(ctx, "k", []byte("+---+"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get = %v, %v, want hit", hit, err)
	}
	if string(data) != "+---+" {
		t.Errorf("Get = %q, want %q", data, "+---+")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "short", []byte("x"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "forever", []byte("y"), 0); err != nil {
		t.Fatal(err)
	}

	now = now.Add(2 * time.Minute)

	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("short")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed from disk")
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should not expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	path := c.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("Get = %v, %v, want clean miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear = %d, want 3", n)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after Clear, want 0", len(entries))
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	m1 := k.MazeKey(MazeKeyOpts{Algorithm: "sidewinder", Width: 10, Height: 10, Seed: 1})
	m2 := k.MazeKey(MazeKeyOpts{Algorithm: "sidewinder", Width: 10, Height: 10, Seed: 2})
	if m1 == m2 {
		t.Error("different seeds should produce different maze keys")
	}
	if !strings.HasPrefix(m1, "maze:") {
		t.Errorf("MazeKey = %q, want maze: prefix", m1)
	}
	if m1 != k.MazeKey(MazeKeyOpts{Algorithm: "sidewinder", Width: 10, Height: 10, Seed: 1}) {
		t.Error("MazeKey should be deterministic")
	}

	a1 := k.ArtifactKey(m1, ArtifactKeyOpts{Format: "svg", CellSize: 20})
	a2 := k.ArtifactKey(m1, ArtifactKeyOpts{Format: "svg", CellSize: 30})
	a3 := k.ArtifactKey(m2, ArtifactKeyOpts{Format: "svg", CellSize: 20})
	if a1 == a2 || a1 == a3 {
		t.Error("different artifact options or mazes should produce different keys")
	}
	if !strings.HasPrefix(a1, "artifact:svg:") {
		t.Errorf("ArtifactKey = %q, want artifact:svg: prefix", a1)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "test:")
	plain := NewDefaultKeyer()

	opts := MazeKeyOpts{Algorithm: "binary-tree", Width: 3, Height: 3}
	if got, want := scoped.MazeKey(opts), "test:"+plain.MazeKey(opts); got != want {
		t.Errorf("MazeKey = %q, want %q", got, want)
	}

	art := ArtifactKeyOpts{Format: "txt"}
	if got, want := scoped.ArtifactKey("m", art), "test:"+plain.ArtifactKey("m", art); got != want {
		t.Errorf("ArtifactKey = %q, want %q", got, want)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	if got := scoped.MazeKey(MazeKeyOpts{}); !strings.HasPrefix(got, "prefix:maze:") {
		t.Errorf("MazeKey with nil inner = %q", got)
	}
}

var errFlaky = errors.New("connection reset")

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(errFlaky)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != errFlaky.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), errFlaky.Error())
	}
	if !errors.Is(err, errFlaky) {
		t.Error("Retryable should unwrap to the original error")
	}
	if IsRetryable(errFlaky) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		failures  int
		retryable bool
		wantCalls int
		wantErr   bool
	}{
		{"success first try", 0, true, 1, false},
		{"permanent error", 5, false, 1, true},
		{"recovers after retry", 1, true, 2, false},
		{"gives up after three attempts", 5, true, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(ctx, func() error {
				calls++
				if calls <= tt.failures {
					if tt.retryable {
						return Retryable(errFlaky)
					}
					return errFlaky
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errFlaky)
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
