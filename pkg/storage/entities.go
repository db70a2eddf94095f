// Package storage 提供剧集与抓取记录的持久化层
// 通过Dialect接口屏蔽sqlite/mysql/postgres的SQL语法差异
package storage

import (
	"context"
	"time"
)

// 任务状态常量
const (
	JobStatusPending        = "Pending"
	JobStatusRunning        = "Running"
	JobStatusSuccess        = "Success"
	JobStatusFailed         = "Failed"
	JobStatusPartialSuccess = "PartialSuccess"
)

// Show 已注册的剧集
type Show struct {
	ID         string    // 剧集ID（UUID）
	Name       string    // 剧名（从URL slug推导）
	URL        string    // 剧集页URL
	Enabled    bool      // 是否参与定时抓取
	CreateTime time.Time // 注册时间
}

// EpisodeRecord 单次抓取得到的最新一集记录
type EpisodeRecord struct {
	ID          string    // 记录ID（UUID）
	JobID       string    // 关联的抓取任务ID
	ShowName    string    // 剧名
	ShowURL     string    // 剧集页URL
	Title       string    // 集标题
	Description string    // 集简介
	AirDate     string    // 播出日期（页面原始文本）
	ScrapedAt   time.Time // 抓取时间
}

// ScrapeJobRecord 批量抓取任务记录
type ScrapeJobRecord struct {
	ID           string     // 任务ID（UUID）
	Status       string     // 任务状态
	Total        int        // URL总数
	Succeeded    int        // 成功数
	Failed       int        // 失败数
	StartedAt    time.Time  // 开始时间
	FinishedAt   *time.Time // 结束时间
	ErrorMessage string     // 失败说明
}

// ShowRepository 剧集存储接口
type ShowRepository interface {
	SaveShow(ctx context.Context, show *Show) error
	GetShow(ctx context.Context, id string) (*Show, error)
	GetShowByURL(ctx context.Context, url string) (*Show, error)
	ListShows(ctx context.Context) ([]*Show, error)
	DeleteShow(ctx context.Context, id string) error
}

// EpisodeRepository 剧集抓取记录存储接口
type EpisodeRepository interface {
	SaveEpisode(ctx context.Context, record *EpisodeRecord) error
	ListEpisodes(ctx context.Context, showName string, limit int) ([]*EpisodeRecord, error)
}

// JobRepository 抓取任务存储接口
type JobRepository interface {
	SaveJob(ctx context.Context, job *ScrapeJobRecord) error
	GetJob(ctx context.Context, id string) (*ScrapeJobRecord, error)
	ListJobs(ctx context.Context, limit int) ([]*ScrapeJobRecord, error)
}

// Repository 聚合存储接口
type Repository interface {
	ShowRepository
	EpisodeRepository
	JobRepository
	Close() error
}
