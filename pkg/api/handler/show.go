package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LENAX/hotstar-scraper/pkg/api/dto"
	"github.com/LENAX/hotstar-scraper/pkg/core/engine"
	"github.com/LENAX/hotstar-scraper/pkg/storage"
)

// ShowHandler 剧集管理API处理器
type ShowHandler struct {
	engine *engine.Engine
}

// NewShowHandler 创建ShowHandler
func NewShowHandler(eng *engine.Engine) *ShowHandler {
	return &ShowHandler{engine: eng}
}

// List 列出已注册剧集
// GET /api/v1/shows
func (h *ShowHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	shows, err := h.engine.ListShows(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(500, fmt.Sprintf("查询剧集失败: %v", err)))
		return
	}

	items := make([]dto.ShowSummary, 0, len(shows))
	for _, show := range shows {
		items = append(items, showSummary(show))
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ListResponse[dto.ShowSummary]{
		Total:   len(items),
		Items:   items,
		HasMore: false,
	}))
}

// Register 注册剧集
// POST /api/v1/shows
func (h *ShowHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterShowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(400, fmt.Sprintf("请求格式错误: %v", err)))
		return
	}

	show, err := h.engine.RegisterShow(ctx, req.URL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(500, fmt.Sprintf("注册剧集失败: %v", err)))
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(showSummary(show)))
}

// Get 获取剧集详情
// GET /api/v1/shows/:id
func (h *ShowHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	show, err := h.engine.GetShow(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(500, fmt.Sprintf("查询剧集失败: %v", err)))
		return
	}
	if show == nil {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(404, "剧集不存在"))
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(showSummary(show)))
}

// Delete 删除剧集
// DELETE /api/v1/shows/:id
func (h *ShowHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	show, err := h.engine.GetShow(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(500, fmt.Sprintf("查询剧集失败: %v", err)))
		return
	}
	if show == nil {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(404, "剧集不存在"))
		return
	}

	if err := h.engine.RemoveShow(ctx, id); err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(500, fmt.Sprintf("删除剧集失败: %v", err)))
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(map[string]string{"id": id}))
}

// Scrape 抓取单个剧集
// POST /api/v1/shows/:id/scrape
func (h *ShowHandler) Scrape(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	show, err := h.engine.GetShow(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(500, fmt.Sprintf("查询剧集失败: %v", err)))
		return
	}
	if show == nil {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(404, "剧集不存在"))
		return
	}

	job, err := h.engine.SubmitJob(ctx, []string{show.URL})
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(500, fmt.Sprintf("提交任务失败: %v", err)))
		return
	}

	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(dto.SubmitJobResponse{
		JobID:   job.ID,
		Total:   1,
		Message: "任务已提交",
	}))
}

// showSummary 转换为DTO（内部方法）
func showSummary(show *storage.Show) dto.ShowSummary {
	return dto.ShowSummary{
		ID:        show.ID,
		Name:      show.Name,
		URL:       show.URL,
		Enabled:   show.Enabled,
		CreatedAt: show.CreateTime,
	}
}
