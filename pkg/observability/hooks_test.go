package observability

import (
	"context"
	"sync"
	"testing"
)

type countingCache struct {
	Noop
	mu   sync.Mutex
	hits map[CacheKind]int
}

func (c *countingCache) OnCacheHit(_ context.Context, kind CacheKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits[kind]++
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	if _, ok := Pipeline().(Noop); !ok {
		t.Errorf("Pipeline() = %T, want Noop", Pipeline())
	}
	if _, ok := Cache().(Noop); !ok {
		t.Errorf("Cache() = %T, want Noop", Cache())
	}
	if _, ok := HTTP().(Noop); !ok {
		t.Errorf("HTTP() = %T, want Noop", HTTP())
	}
}

func TestSetHooks(t *testing.T) {
	defer Reset()

	counter := &countingCache{hits: make(map[CacheKind]int)}
	SetCacheHooks(counter)
	SetCacheHooks(nil)

	Cache().OnCacheHit(context.Background(), CacheLayout)
	Cache().OnCacheHit(context.Background(), CacheLayout)
	Cache().OnCacheHit(context.Background(), CacheArtifact)
	if counter.hits[CacheLayout] != 2 || counter.hits[CacheArtifact] != 1 {
		t.Errorf("hits = %v", counter.hits)
	}

	// Categories are registered independently.
	if _, ok := Pipeline().(Noop); !ok {
		t.Error("setting cache hooks should leave pipeline hooks alone")
	}

	Reset()
	if Cache() == CacheHooks(counter) {
		t.Error("Reset should drop registered hooks")
	}
}

func TestConcurrentRegistration(t *testing.T) {
	defer Reset()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetPipelineHooks(Noop{})
			SetHTTPHooks(Noop{})
		}()
		go func() {
			defer wg.Done()
			Pipeline().OnLayoutStart(context.Background(), LayoutEvent{ChartType: "LineChart"})
			HTTP().OnRequest(context.Background(), "GET", "/healthz")
		}()
	}
	wg.Wait()
}
