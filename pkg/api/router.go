package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/LENAX/hotstar-scraper/pkg/api/handler"
	"github.com/LENAX/hotstar-scraper/pkg/api/middleware"
	"github.com/LENAX/hotstar-scraper/pkg/core/engine"
)

// SetupRouter 设置路由
func SetupRouter(eng *engine.Engine, version string, defaultURLs []string) *gin.Engine {
	// 设置gin模式
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// 全局中间件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	// Prometheus指标
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if metrics, err := middleware.NewPrometheusMiddleware(registry); err != nil {
		log.Printf("⚠️ [API] 指标中间件初始化失败: %v", err)
	} else {
		router.Use(metrics.Handler())
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// 创建handlers
	scrapeHandler := handler.NewScrapeHandler(eng, defaultURLs)
	showHandler := handler.NewShowHandler(eng)
	jobHandler := handler.NewJobHandler(eng)
	episodeHandler := handler.NewEpisodeHandler(eng)
	healthHandler := handler.NewHealthHandler(version)

	// 健康检查路由（不带前缀）
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// 兼容接口：同步抓取并返回结果数组
	router.GET("/scrape", scrapeHandler.Scrape)

	// API v1 路由组
	v1 := router.Group("/api/v1")
	{
		// Show路由
		shows := v1.Group("/shows")
		{
			shows.GET("", showHandler.List)
			shows.POST("", showHandler.Register)
			shows.GET("/:id", showHandler.Get)
			shows.DELETE("/:id", showHandler.Delete)
			shows.POST("/:id/scrape", showHandler.Scrape)
		}

		// Job路由
		jobs := v1.Group("/jobs")
		{
			jobs.GET("", jobHandler.List)
			jobs.POST("", scrapeHandler.Submit)
			jobs.GET("/:id", jobHandler.Get)
			jobs.GET("/:id/results", jobHandler.Results)
		}

		// Episode路由
		v1.GET("/episodes", episodeHandler.List)

		// WebSocket事件推送
		if streamHandler, err := handler.NewStreamHandler(eng.EventBus()); err != nil {
			log.Printf("⚠️ [API] 事件推送初始化失败: %v", err)
		} else {
			v1.GET("/events/stream", streamHandler.Stream)
		}
	}

	return router
}
