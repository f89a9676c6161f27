package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"todolist/pkg/metrics"
)

func MetricsMiddleware(m *metrics.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		m.IncrementActiveConnections()
		defer m.DecrementActiveConnections()

		c.Next()

		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		m.RecordRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
