package middlewares

import (
	"strconv"
	"time"

	"github.com/Kariqs/aroena-api/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records request count and latency per route template.
func Metrics() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(ctx.Writer.Status())

		metrics.RequestTotal.WithLabelValues(ctx.Request.Method, path, status).Inc()
		metrics.RequestDuration.WithLabelValues(ctx.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
