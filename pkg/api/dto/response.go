package dto

import "time"

// APIResponse 通用API响应结构
type APIResponse[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse[T any](data T) APIResponse[T] {
	return APIResponse[T]{
		Code:    0,
		Message: "success",
		Data:    data,
	}
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(code int, message string) APIResponse[any] {
	return APIResponse[any]{
		Code:    code,
		Message: message,
	}
}

// ListResponse 列表响应
type ListResponse[T any] struct {
	Total   int  `json:"total"`
	Items   []T  `json:"items"`
	HasMore bool `json:"has_more"`
}

// ShowSummary 剧集摘要信息
type ShowSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

// JobSummary 抓取任务摘要信息
type JobSummary struct {
	ID           string     `json:"id"`
	Status       string     `json:"status"`
	Total        int        `json:"total"`
	Succeeded    int        `json:"succeeded"`
	Failed       int        `json:"failed"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	Duration     string     `json:"duration,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
}

// EpisodeSummary 剧集抓取记录摘要
type EpisodeSummary struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	ShowName    string    `json:"name"`
	ShowURL     string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	AirDate     string    `json:"date,omitempty"`
	ScrapedAt   time.Time `json:"scraped_at"`
}

// SubmitJobResponse 任务提交响应
type SubmitJobResponse struct {
	JobID   string `json:"job_id"`
	Total   int    `json:"total"`
	Message string `json:"message"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}
