package cache

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/orgchart/pkg/org"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always return miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "layout:abc", []byte(`{"mode":"tree"}`), time.Hour); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "layout:abc")
	if err != nil || !hit || string(data) != `{"mode":"tree"}` {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "layout:abc"); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Errorf("Delete(missing) = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned")
	}

	if err := c.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without TTL missing")
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
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("Get(corrupt) = hit %v, err %v", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry not removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Clear() removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
}

func TestFileCachePrune(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "short", []byte("x"), time.Minute)
	_ = c.Set(ctx, "long", []byte("y"), time.Hour)
	_ = c.Set(ctx, "forever", []byte("z"), 0)
	if err := os.WriteFile(filepath.Join(c.Dir(), "stray"), []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}

	now = now.Add(10 * time.Minute)
	n, err := c.Prune()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Prune() removed %d entries, want 2 (expired and unreadable)", n)
	}
	for _, k := range []string{"long", "forever"} {
		if _, hit, _ := c.Get(ctx, k); !hit {
			t.Errorf("%s pruned while still valid", k)
		}
	}
}

func TestFileCacheUsage(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if n, size, err := c.Usage(); n != 0 || size != 0 || err != nil {
		t.Errorf("empty Usage() = %d, %d, %v", n, size, err)
	}
	_ = c.Set(ctx, "a", []byte("1234"), 0)
	_ = c.Set(ctx, "b", []byte("56"), 0)

	n, size, err := c.Usage()
	if err != nil {
		t.Fatal(err)
	}
	header := int64(len(entryMagic) + len("0\n"))
	if n != 2 || size != 2*header+6 {
		t.Errorf("Usage() = %d entries, %d bytes", n, size)
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := DefaultDir()
	if err != nil {
		t.Fatal(err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", "orgchart"); dir != want {
		t.Errorf("DefaultDir() = %q, want %q", dir, want)
	}

	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)
	if dir, _ := DefaultDir(); dir != filepath.Join(custom, "orgchart") {
		t.Errorf("DefaultDir() with XDG_CACHE_HOME = %q", dir)
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	type payload struct{ Nodes int }
	if err := SetJSON(ctx, c, "k", payload{Nodes: 7}, time.Hour); err != nil {
		t.Fatal(err)
	}
	var got payload
	if ok, err := GetJSON(ctx, c, "k", &got); !ok || err != nil || got.Nodes != 7 {
		t.Errorf("GetJSON = %v, %v, %+v", ok, err, got)
	}

	if err := c.Set(ctx, "raw", []byte("[1,2"), time.Hour); err != nil {
		t.Fatal(err)
	}
	if ok, err := GetJSON(ctx, c, "raw", &got); ok || err != nil {
		t.Errorf("GetJSON(undecodable) = %v, %v; want miss", ok, err)
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
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}

	a := []org.Employee{{ID: "e1", Name: "Jean Dupont"}, {ID: "e2", Name: "Marc Arcand", ManagerID: "e1"}}
	b := []org.Employee{a[1], a[0]}
	if HashEmployees(a) != HashEmployees(slices.Clone(a)) {
		t.Error("HashEmployees should be deterministic")
	}
	if HashEmployees(a) == HashEmployees(b) {
		t.Error("reordering employees should change the hash")
	}
	if HashEmployees(nil) != HashEmployees([]org.Employee{}) {
		t.Error("nil and empty directories should hash alike")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	if k.DirectoryKey("http", "https://hr/api") == k.DirectoryKey("http", "https://hr/api2") {
		t.Error("different locations should produce different keys")
	}

	lk1 := k.LayoutKey("hash123", LayoutKeyOpts{Profile: "mobile"})
	lk2 := k.LayoutKey("hash123", LayoutKeyOpts{Profile: "desktop"})
	if lk1 == lk2 {
		t.Error("different profiles should produce different layout keys")
	}

	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Hovered: "e1"})
	if ak1 == ak2 {
		t.Error("hover state should change artifact keys")
	}
	if lk1[:7] != "layout:" || ak1[:9] != "artifact:" {
		t.Errorf("unexpected key prefixes: %s, %s", lk1, ak1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tenant:acme:")

	want := "tenant:acme:" + inner.LayoutKey("h", LayoutKeyOpts{Profile: "tablet"})
	if got := scoped.LayoutKey("h", LayoutKeyOpts{Profile: "tablet"}); got != want {
		t.Errorf("LayoutKey = %s, want %s", got, want)
	}

	nilInner := NewScopedKeyer(nil, "p:")
	if got := nilInner.DirectoryKey("file", "x"); got != "p:"+inner.DirectoryKey("file", "x") {
		t.Errorf("nil inner keyer: %s", got)
	}
}
