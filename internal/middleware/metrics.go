package middleware

import (
	"strconv"

	"github.com/docwell/editor-server/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics counts requests by matched route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
