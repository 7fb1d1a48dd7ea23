package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"session-tracker/pkg/metrics"
)

// Metrics 按路由模板记录请求数与耗时
// 未匹配路由统一记为 "unmatched"，避免路径参数撑爆标签基数
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		metrics.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPLatency.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
