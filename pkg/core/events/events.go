// Package events 提供抓取过程的事件驱动支持
package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType 事件类型
type EventType string

const (
	// 任务事件
	EventJobSubmitted EventType = "job.submitted" // 批量任务提交
	EventJobCompleted EventType = "job.completed" // 批量任务完成

	// 单剧集事件
	EventShowStarted EventType = "show.started" // 单剧集抓取开始
	EventShowScraped EventType = "show.scraped" // 单剧集抓取成功
	EventShowFailed  EventType = "show.failed"  // 单剧集抓取失败
)

// ScrapeEvent 抓取事件基础结构
type ScrapeEvent struct {
	ID        string      `json:"id"`                 // 事件ID（UUID）
	Type      EventType   `json:"type"`               // 事件类型
	JobID     string      `json:"job_id"`             // 关联任务ID
	ShowURL   string      `json:"show_url,omitempty"` // 关联剧集URL
	Timestamp time.Time   `json:"timestamp"`          // 事件时间
	Payload   interface{} `json:"payload,omitempty"`  // 事件负载
}

// NewScrapeEvent 创建抓取事件
func NewScrapeEvent(eventType EventType, jobID, showURL string, payload interface{}) *ScrapeEvent {
	return &ScrapeEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		JobID:     jobID,
		ShowURL:   showURL,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// JobSubmittedPayload 任务提交事件负载
type JobSubmittedPayload struct {
	URLs []string `json:"urls"` // 本次任务包含的剧集URL
}

// JobCompletedPayload 任务完成事件负载
type JobCompletedPayload struct {
	Status    string `json:"status"`    // 任务最终状态
	Total     int    `json:"total"`     // URL总数
	Succeeded int    `json:"succeeded"` // 成功数
	Failed    int    `json:"failed"`    // 失败数
	Duration  string `json:"duration"`  // 执行耗时
}

// ShowScrapedPayload 单剧集抓取成功事件负载
type ShowScrapedPayload struct {
	ShowName    string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AirDate     string `json:"date"`
}

// ShowFailedPayload 单剧集抓取失败事件负载
type ShowFailedPayload struct {
	ShowName string `json:"name"`
	Error    string `json:"error"`
}
