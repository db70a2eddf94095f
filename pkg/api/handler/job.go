package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LENAX/hotstar-scraper/pkg/api/dto"
	"github.com/LENAX/hotstar-scraper/pkg/core/engine"
	"github.com/LENAX/hotstar-scraper/pkg/core/scraper"
	"github.com/LENAX/hotstar-scraper/pkg/storage"
)

// JobHandler 抓取任务API处理器
type JobHandler struct {
	engine *engine.Engine
}

// NewJobHandler 创建JobHandler
func NewJobHandler(eng *engine.Engine) *JobHandler {
	return &JobHandler{engine: eng}
}

// List 列出任务记录
// GET /api/v1/jobs
func (h *JobHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ListQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(400, fmt.Sprintf("查询参数错误: %v", err)))
		return
	}

	jobs, err := h.engine.ListJobs(ctx, req.GetDefaultLimit())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(500, fmt.Sprintf("查询任务失败: %v", err)))
		return
	}

	items := make([]dto.JobSummary, 0, len(jobs))
	for _, job := range jobs {
		items = append(items, jobSummary(job))
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ListResponse[dto.JobSummary]{
		Total:   len(items),
		Items:   items,
		HasMore: len(items) == req.GetDefaultLimit(),
	}))
}

// Get 获取任务详情
// GET /api/v1/jobs/:id
func (h *JobHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	job, err := h.engine.GetJob(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(500, fmt.Sprintf("查询任务失败: %v", err)))
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(404, "任务不存在"))
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(jobSummary(job)))
}

// Results 获取任务的逐URL结果
// GET /api/v1/jobs/:id/results
// 仅运行期内存中的任务可查询逐URL结果
func (h *JobHandler) Results(c *gin.Context) {
	id := c.Param("id")

	results, ok := h.engine.GetJobResults(id)
	if !ok {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(404, "任务结果不可用"))
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ListResponse[scraper.ScrapeResult]{
		Total:   len(results),
		Items:   results,
		HasMore: false,
	}))
}

// jobSummary 转换为DTO（内部方法）
func jobSummary(job *storage.ScrapeJobRecord) dto.JobSummary {
	summary := dto.JobSummary{
		ID:           job.ID,
		Status:       job.Status,
		Total:        job.Total,
		Succeeded:    job.Succeeded,
		Failed:       job.Failed,
		StartedAt:    job.StartedAt,
		FinishedAt:   job.FinishedAt,
		ErrorMessage: job.ErrorMessage,
	}
	if job.FinishedAt != nil {
		summary.Duration = job.FinishedAt.Sub(job.StartedAt).String()
	}
	return summary
}
