package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LENAX/hotstar-scraper/pkg/api/dto"
	"github.com/LENAX/hotstar-scraper/pkg/core/engine"
)

// EpisodeHandler 抓取记录API处理器
type EpisodeHandler struct {
	engine *engine.Engine
}

// NewEpisodeHandler 创建EpisodeHandler
func NewEpisodeHandler(eng *engine.Engine) *EpisodeHandler {
	return &EpisodeHandler{engine: eng}
}

// List 查询历史抓取记录
// GET /api/v1/episodes?name=xxx&limit=20
func (h *EpisodeHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.EpisodeQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(400, fmt.Sprintf("查询参数错误: %v", err)))
		return
	}

	episodes, err := h.engine.ListEpisodes(ctx, req.Name, req.GetDefaultLimit())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(500, fmt.Sprintf("查询抓取记录失败: %v", err)))
		return
	}

	items := make([]dto.EpisodeSummary, 0, len(episodes))
	for _, ep := range episodes {
		items = append(items, dto.EpisodeSummary{
			ID:          ep.ID,
			JobID:       ep.JobID,
			ShowName:    ep.ShowName,
			ShowURL:     ep.ShowURL,
			Title:       ep.Title,
			Description: ep.Description,
			AirDate:     ep.AirDate,
			ScrapedAt:   ep.ScrapedAt,
		})
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ListResponse[dto.EpisodeSummary]{
		Total:   len(items),
		Items:   items,
		HasMore: len(items) == req.GetDefaultLimit(),
	}))
}
