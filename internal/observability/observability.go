// Package observability provides in-process visibility into the
// request pipeline: a session collector for counters and a logging
// hook set. Nothing here leaves the process.
package observability

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/resio/resio-cli/internal/api"
)

// SessionStats is a snapshot of pipeline activity for this process.
type SessionStats struct {
	Requests      int64         `json:"requests"`
	Retries       int64         `json:"retries"`
	Refreshes     int64         `json:"refreshes"`
	RefreshFailed int64         `json:"refresh_failed"`
	StatusCounts  map[int]int64 `json:"status_counts"`
}

// Collector accumulates session statistics. Safe for concurrent use.
type Collector struct {
	mu    sync.Mutex
	stats SessionStats
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{stats: SessionStats{StatusCounts: make(map[int]int64)}}
}

func (c *Collector) OnRequest(method, url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Requests++
}

func (c *Collector) OnResponse(method, url string, status, attempt int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.StatusCounts[status]++
	if attempt > 1 {
		c.stats.Retries++
	}
}

func (c *Collector) OnRefresh(ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Refreshes++
	if !ok {
		c.stats.RefreshFailed++
	}
}

// Snapshot returns a copy of the current statistics.
func (c *Collector) Snapshot() SessionStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.stats
	out.StatusCounts = make(map[int]int64, len(c.stats.StatusCounts))
	for k, v := range c.stats.StatusCounts {
		out.StatusCounts[k] = v
	}
	return out
}

// LogHooks logs pipeline activity at debug level.
type LogHooks struct {
	Log zerolog.Logger
}

func (h LogHooks) OnRequest(method, url string) {
	h.Log.Debug().Str("method", method).Str("url", url).Msg("request")
}

func (h LogHooks) OnResponse(method, url string, status, attempt int) {
	h.Log.Debug().Str("method", method).Str("url", url).Int("status", status).Int("attempt", attempt).Msg("response")
}

func (h LogHooks) OnRefresh(ok bool) {
	h.Log.Debug().Bool("ok", ok).Msg("token refresh")
}

// Multi fans hook events out to several observers.
type Multi []api.Hooks

func (m Multi) OnRequest(method, url string) {
	for _, h := range m {
		h.OnRequest(method, url)
	}
}

func (m Multi) OnResponse(method, url string, status, attempt int) {
	for _, h := range m {
		h.OnResponse(method, url, status, attempt)
	}
}

func (m Multi) OnRefresh(ok bool) {
	for _, h := range m {
		h.OnRefresh(ok)
	}
}
