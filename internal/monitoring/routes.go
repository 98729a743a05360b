package monitoring

import (
	"eto-audiobook-api/internal/cache"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, collector *Collector, store cache.Store) {
	monitoringController := &MonitoringController{Collector: collector, Cache: store}

	r.GET("/health", monitoringController.Health)
	r.GET("/metrics", monitoringController.Metrics)
}
