package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemracing/regulations/backend/go-services/pkg/logger"
	"github.com/stemracing/regulations/backend/go-services/pkg/metrics"
)

// AccessLog writes one structured log line per request and counts it in
// metrics.HTTPRequests. Unmatched routes are labelled "unmatched" to keep
// label cardinality bounded.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		logger.Fields("request", map[string]interface{}{
			"method":     c.Request.Method,
			"route":      route,
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": GetRequestID(c),
			"client_ip":  c.ClientIP(),
		})
	}
}
