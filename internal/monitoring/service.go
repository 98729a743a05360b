package monitoring

import (
	"net/http"
	"sync"
	"time"

	"eto-audiobook-api/internal/cache"

	"github.com/gin-gonic/gin"
)

// Collector accumulates request counters for the metrics endpoint. Counters
// are process-local and reset on restart.
type Collector struct {
	mu        sync.Mutex
	startedAt time.Time
	total     int64
	errors    int64
	byRoute   map[string]*routeCounter
}

type routeCounter struct {
	count    int64
	duration time.Duration
}

func NewCollector() *Collector {
	return &Collector{
		startedAt: time.Now(),
		byRoute:   make(map[string]*routeCounter),
	}
}

// Middleware counts every request after the handler chain has run, so the
// final status code is known.
func (col *Collector) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		key := c.Request.Method + " " + route

		col.mu.Lock()
		col.total++
		if c.Writer.Status() >= http.StatusInternalServerError {
			col.errors++
		}
		rc, ok := col.byRoute[key]
		if !ok {
			rc = &routeCounter{}
			col.byRoute[key] = rc
		}
		rc.count++
		rc.duration += elapsed
		col.mu.Unlock()
	}
}

// RouteStats is the per-route slice of the metrics payload.
type RouteStats struct {
	Count     int64   `json:"count"`
	AvgTimeMs float64 `json:"avg_time_ms"`
}

// Snapshot is the stats payload served by the metrics endpoint.
type Snapshot struct {
	UptimeSeconds int64                 `json:"uptime_seconds"`
	TotalRequests int64                 `json:"total_requests"`
	ErrorCount    int64                 `json:"error_count"`
	ByRoute       map[string]RouteStats `json:"requests_by_route"`
}

func (col *Collector) Snapshot() Snapshot {
	col.mu.Lock()
	defer col.mu.Unlock()

	byRoute := make(map[string]RouteStats, len(col.byRoute))
	for k, rc := range col.byRoute {
		byRoute[k] = RouteStats{
			Count:     rc.count,
			AvgTimeMs: float64(rc.duration.Milliseconds()) / float64(rc.count),
		}
	}

	return Snapshot{
		UptimeSeconds: int64(time.Since(col.startedAt).Seconds()),
		TotalRequests: col.total,
		ErrorCount:    col.errors,
		ByRoute:       byRoute,
	}
}

// CacheStatus reports which cache backend is serving the voice catalog.
type CacheStatus struct {
	Enabled bool   `json:"enabled"`
	Backend string `json:"backend"`
}

func cacheStatus(store cache.Store) CacheStatus {
	if store == nil {
		return CacheStatus{}
	}
	return CacheStatus{Enabled: store.Enabled(), Backend: store.Backend()}
}
