package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LENAX/hotstar-scraper/pkg/api/dto"
	"github.com/LENAX/hotstar-scraper/pkg/core/engine"
)

// ScrapeHandler 抓取API处理器
type ScrapeHandler struct {
	engine      *engine.Engine
	defaultURLs []string // 未注册任何剧集时的兜底URL列表
}

// NewScrapeHandler 创建ScrapeHandler
func NewScrapeHandler(eng *engine.Engine, defaultURLs []string) *ScrapeHandler {
	return &ScrapeHandler{engine: eng, defaultURLs: defaultURLs}
}

// Scrape 同步抓取所有启用剧集并返回结果数组
// GET /scrape
// 响应为逐URL的结果数组，失败项包含error与name字段
func (h *ScrapeHandler) Scrape(c *gin.Context) {
	ctx := c.Request.Context()

	urls, err := h.targetURLs(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(500, err.Error()))
		return
	}

	// 无可抓取剧集时返回空数组
	results := h.engine.ScrapeNow(ctx, urls)
	c.JSON(http.StatusOK, results)
}

// Submit 提交异步抓取任务
// POST /api/v1/jobs
func (h *ScrapeHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SubmitScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(400, fmt.Sprintf("请求格式错误: %v", err)))
		return
	}

	urls := req.URLs
	if len(urls) == 0 {
		var err error
		urls, err = h.targetURLs(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(500, err.Error()))
			return
		}
	}
	if len(urls) == 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(400, "无可抓取的剧集"))
		return
	}

	job, err := h.engine.SubmitJob(ctx, urls)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(500, fmt.Sprintf("提交任务失败: %v", err)))
		return
	}

	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(dto.SubmitJobResponse{
		JobID:   job.ID,
		Total:   len(urls),
		Message: "任务已提交",
	}))
}

// targetURLs 返回待抓取的URL列表：优先已启用剧集，其次兜底配置
func (h *ScrapeHandler) targetURLs(c *gin.Context) ([]string, error) {
	urls, err := h.engine.EnabledShowURLs(c.Request.Context())
	if err != nil {
		return nil, fmt.Errorf("查询启用剧集失败: %w", err)
	}
	if len(urls) == 0 {
		return h.defaultURLs, nil
	}
	return urls, nil
}
