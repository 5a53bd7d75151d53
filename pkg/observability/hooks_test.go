package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type countingCache struct {
	NoopCacheHooks
	mu   sync.Mutex
	hits map[string]int
}

func (c *countingCache) OnCacheHit(_ context.Context, keyType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits[keyType]++
}

type testPipelineHooks struct{ NoopPipelineHooks }

func TestDefaultsAreNoops(t *testing.T) {
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Errorf("Server() = %T, want NoopServerHooks", Server())
	}
}

func TestSetHooks(t *testing.T) {
	t.Cleanup(Reset)

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)
	if Pipeline() != custom {
		t.Error("a nil hook should not replace the installed one")
	}

	counter := &countingCache{hits: map[string]int{}}
	SetCacheHooks(counter)
	Cache().OnCacheHit(context.Background(), "layout")
	if counter.hits["layout"] != 1 {
		t.Errorf("hits = %v", counter.hits)
	}
	if Pipeline() != custom {
		t.Error("setting cache hooks should leave pipeline hooks alone")
	}

	Reset()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset should restore the no-op cache hooks")
	}
}

func TestRegister(t *testing.T) {
	t.Cleanup(Reset)

	h := NewLogHooks(log.NewWithOptions(&bytes.Buffer{}, log.Options{}))
	if !Register(h) {
		t.Fatal("LogHooks implements every interface")
	}
	if Pipeline() != PipelineHooks(h) || Cache() != CacheHooks(h) || Server() != ServerHooks(h) {
		t.Error("Register should install LogHooks everywhere")
	}

	Reset()
	counter := &countingCache{hits: map[string]int{}}
	Register(counter)
	if Cache() != CacheHooks(counter) {
		t.Error("cache hooks not installed")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("a cache-only hook should not replace server hooks")
	}

	if Register(struct{}{}) {
		t.Error("a value implementing nothing should report false")
	}
}

func TestConcurrentRegisterAndRead(t *testing.T) {
	t.Cleanup(Reset)
	counter := &countingCache{hits: map[string]int{}}

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetCacheHooks(counter)
				SetPipelineHooks(&testPipelineHooks{})
				return
			}
			Cache().OnCacheMiss(context.Background(), "artifact")
			Pipeline().OnLayoutStart(context.Background(), "laptop", 3)
		}()
	}
	wg.Wait()

	if Cache() != CacheHooks(counter) {
		t.Error("lost cache hooks under concurrent updates")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	ctx := context.Background()

	h.OnLoadComplete(ctx, "http:hr", 0, time.Millisecond, errors.New("boom"))
	h.OnLayoutComplete(ctx, "tablet", "grid", time.Millisecond, nil)
	h.OnCacheHit(ctx, "layout")
	h.OnRequest(ctx, "GET", "/healthz", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"directory load failed", "mode=grid", "cache hit", "route=/healthz"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}

	if NewLogHooks(nil).logger == nil {
		t.Error("NewLogHooks(nil) should fall back to the default logger")
	}
}
