package dto

// RegisterShowRequest 注册剧集请求
type RegisterShowRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// SubmitScrapeRequest 提交抓取任务请求
// URLs为空时抓取所有已启用的剧集
type SubmitScrapeRequest struct {
	URLs []string `json:"urls" binding:"omitempty,dive,url"`
}

// EpisodeQueryRequest 抓取记录查询请求
type EpisodeQueryRequest struct {
	Name  string `form:"name" binding:"omitempty"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ListQueryRequest 通用列表查询请求
type ListQueryRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// GetDefaultLimit 获取默认limit
func (r *EpisodeQueryRequest) GetDefaultLimit() int {
	if r.Limit <= 0 {
		return 20
	}
	return r.Limit
}

// GetDefaultLimit 获取默认limit
func (r *ListQueryRequest) GetDefaultLimit() int {
	if r.Limit <= 0 {
		return 20
	}
	return r.Limit
}
