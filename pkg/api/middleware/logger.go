package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger 请求日志中间件
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		latency := time.Since(start).Round(time.Millisecond)
		status := c.Writer.Status()
		if status >= 500 {
			log.Printf("❌ [API] %s %s -> %d (%v)", c.Request.Method, path, status, latency)
		} else {
			log.Printf("📡 [API] %s %s -> %d (%v)", c.Request.Method, path, status, latency)
		}
	}
}
