package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLayoutStart(ctx, 2)
	p.OnLayoutComplete(ctx, 40, 1, time.Second, nil)
	p.OnValidateComplete(ctx, true, time.Millisecond)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "report", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/api/warehouse/create")
	h.OnResponse(ctx, "POST", "/api/warehouse/create", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	counters := NewCounters()
	SetPipelineHooks(counters)
	SetCacheHooks(counters)
	SetHTTPHooks(counters)
	if Pipeline() != PipelineHooks(counters) || Cache() != CacheHooks(counters) || HTTP() != HTTPHooks(counters) {
		t.Error("Set*Hooks should register custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := NewCounters()
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != PipelineHooks(custom) {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestCounters(t *testing.T) {
	ctx := context.Background()
	c := NewCounters()

	c.OnLayoutComplete(ctx, 10, 2, time.Millisecond, nil)
	c.OnLayoutComplete(ctx, 0, 0, 0, errors.New("boom"))
	c.OnValidateComplete(ctx, false, 0)
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "layout", 512)
	c.OnRequest(ctx, "POST", "/api/warehouse/create")
	c.OnResponse(ctx, "POST", "/api/warehouse/create", 200, time.Millisecond)

	s := c.Snapshot()
	if s.Layouts != 1 || s.LayoutErrors != 1 || s.Cells != 10 || s.Warnings != 2 {
		t.Errorf("layout counters = %+v", s)
	}
	if s.Validations != 1 || s.Invalid != 1 {
		t.Errorf("validation counters = %+v", s)
	}
	if s.CacheHits != 1 || s.CacheMisses != 1 || s.CacheBytes != 512 {
		t.Errorf("cache counters = %+v", s)
	}
	if s.Requests != 1 || s.ResponseStatus[200] != 1 || s.ByPath["/api/warehouse/create"] != 1 {
		t.Errorf("http counters = %+v", s)
	}

	// snapshots are copies
	s.ByPath["/x"] = 9
	if c.Snapshot().ByPath["/x"] != 0 {
		t.Error("Snapshot should not alias internal maps")
	}
}

func TestCountersConcurrent(t *testing.T) {
	ctx := context.Background()
	c := NewCounters()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.OnRequest(ctx, "GET", "/healthz")
			c.OnCacheHit(ctx, "layout")
		}()
	}
	wg.Wait()
	if s := c.Snapshot(); s.Requests != 50 || s.CacheHits != 50 {
		t.Errorf("concurrent counters = %+v", s)
	}
}
