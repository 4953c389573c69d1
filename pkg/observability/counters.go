package observability

import (
	"context"
	"sync"
	"time"
)

// Counters implements every hook interface by keeping running totals.
// It is safe for concurrent use.
type Counters struct {
	mu   sync.Mutex
	snap Snapshot
}

// Snapshot is a point-in-time copy of Counters.
type Snapshot struct {
	Layouts        int64            `json:"layouts"`
	LayoutErrors   int64            `json:"layout_errors"`
	Cells          int64            `json:"cells"`
	Warnings       int64            `json:"warnings"`
	LayoutTime     time.Duration    `json:"layout_time_ns"`
	Validations    int64            `json:"validations"`
	Invalid        int64            `json:"invalid"`
	CacheHits      int64            `json:"cache_hits"`
	CacheMisses    int64            `json:"cache_misses"`
	CacheBytes     int64            `json:"cache_bytes_written"`
	Requests       int64            `json:"requests"`
	ResponseStatus map[int]int64    `json:"responses_by_status"`
	RequestTime    time.Duration    `json:"request_time_ns"`
	ByPath         map[string]int64 `json:"requests_by_path"`
}

// NewCounters creates zeroed counters.
func NewCounters() *Counters {
	return &Counters{snap: Snapshot{
		ResponseStatus: make(map[int]int64),
		ByPath:         make(map[string]int64),
	}}
}

// Snapshot returns a copy of the current totals.
func (c *Counters) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.snap
	s.ResponseStatus = make(map[int]int64, len(c.snap.ResponseStatus))
	for k, v := range c.snap.ResponseStatus {
		s.ResponseStatus[k] = v
	}
	s.ByPath = make(map[string]int64, len(c.snap.ByPath))
	for k, v := range c.snap.ByPath {
		s.ByPath[k] = v
	}
	return s
}

func (c *Counters) OnLayoutStart(context.Context, int) {}

func (c *Counters) OnLayoutComplete(_ context.Context, cells, warnings int, d time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.snap.LayoutErrors++
		return
	}
	c.snap.Layouts++
	c.snap.Cells += int64(cells)
	c.snap.Warnings += int64(warnings)
	c.snap.LayoutTime += d
}

func (c *Counters) OnValidateComplete(_ context.Context, valid bool, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap.Validations++
	if !valid {
		c.snap.Invalid++
	}
}

func (c *Counters) OnCacheHit(context.Context, string) {
	c.mu.Lock()
	c.snap.CacheHits++
	c.mu.Unlock()
}

func (c *Counters) OnCacheMiss(context.Context, string) {
	c.mu.Lock()
	c.snap.CacheMisses++
	c.mu.Unlock()
}

func (c *Counters) OnCacheSet(_ context.Context, _ string, size int) {
	c.mu.Lock()
	c.snap.CacheBytes += int64(size)
	c.mu.Unlock()
}

func (c *Counters) OnRequest(_ context.Context, _, path string) {
	c.mu.Lock()
	c.snap.Requests++
	c.snap.ByPath[path]++
	c.mu.Unlock()
}

func (c *Counters) OnResponse(_ context.Context, _, _ string, status int, d time.Duration) {
	c.mu.Lock()
	c.snap.ResponseStatus[status]++
	c.snap.RequestTime += d
	c.mu.Unlock()
}

var (
	_ PipelineHooks = (*Counters)(nil)
	_ CacheHooks    = (*Counters)(nil)
	_ HTTPHooks     = (*Counters)(nil)
)
