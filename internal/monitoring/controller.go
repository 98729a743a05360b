package monitoring

import (
	"net/http"
	"runtime"

	"eto-audiobook-api/internal/cache"

	"github.com/gin-gonic/gin"
)

const serviceName = "eto-audiobook-api"

type MonitoringController struct {
	Collector *Collector
	Cache     cache.Store
}

func (mc *MonitoringController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
	})
}

func (mc *MonitoringController) Metrics(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.JSON(http.StatusOK, gin.H{
		"requests": mc.Collector.Snapshot(),
		"cache":    cacheStatus(mc.Cache),
		"runtime": gin.H{
			"goroutines":  runtime.NumGoroutine(),
			"heap_alloc":  mem.HeapAlloc,
			"total_alloc": mem.TotalAlloc,
			"num_gc":      mem.NumGC,
			"go_version":  runtime.Version(),
		},
	})
}
