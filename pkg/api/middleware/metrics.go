package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMiddleware HTTP请求指标中间件
type PrometheusMiddleware struct {
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewPrometheusMiddleware 创建PrometheusMiddleware并注册指标
func NewPrometheusMiddleware(reg prometheus.Registerer) (*PrometheusMiddleware, error) {
	m := &PrometheusMiddleware{
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed.",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	if err := reg.Register(m.requestCount); err != nil {
		return nil, err
	}
	if err := reg.Register(m.requestDuration); err != nil {
		return nil, err
	}
	return m, nil
}

// Handler 返回gin中间件
func (m *PrometheusMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// /metrics自身不计入指标
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
			m.requestDuration.WithLabelValues(c.Request.Method, m.routePath(c)).Observe(v)
		}))
		c.Next()
		timer.ObserveDuration()

		m.requestCount.WithLabelValues(
			c.Request.Method,
			m.routePath(c),
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}

// routePath 返回路由模板（如/api/v1/shows/:id），未匹配路由时回退原始路径
func (m *PrometheusMiddleware) routePath(c *gin.Context) string {
	if path := c.FullPath(); path != "" {
		return path
	}
	return c.Request.URL.Path
}
