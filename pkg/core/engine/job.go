package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LENAX/hotstar-scraper/pkg/core/scraper"
	"github.com/LENAX/hotstar-scraper/pkg/storage"
)

// ScrapeJob 批量抓取任务
type ScrapeJob struct {
	ID         string                 // 任务ID（UUID）
	URLs       []string               // 本次任务的剧集URL列表
	Status     string                 // 任务状态
	Results    []scraper.ScrapeResult // 按URL顺序的抓取结果
	StartedAt  time.Time              // 开始时间
	FinishedAt *time.Time             // 结束时间

	mu sync.RWMutex
}

// NewScrapeJob 创建抓取任务
func NewScrapeJob(urls []string) *ScrapeJob {
	return &ScrapeJob{
		ID:      uuid.NewString(),
		URLs:    urls,
		Status:  storage.JobStatusPending,
		Results: make([]scraper.ScrapeResult, len(urls)),
	}
}

// SetRunning 标记任务开始执行
func (j *ScrapeJob) SetRunning() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = storage.JobStatusRunning
	j.StartedAt = time.Now()
}

// SetResult 记录单个URL的结果（按下标保持顺序）
func (j *ScrapeJob) SetResult(index int, result scraper.ScrapeResult) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if index >= 0 && index < len(j.Results) {
		j.Results[index] = result
	}
}

// Finish 标记任务结束并计算最终状态
// 全部成功=Success，全部失败=Failed，混合=PartialSuccess
func (j *ScrapeJob) Finish() {
	j.mu.Lock()
	defer j.mu.Unlock()

	succeeded, failed := 0, 0
	for _, r := range j.Results {
		if r.OK() {
			succeeded++
		} else {
			failed++
		}
	}

	switch {
	case failed == 0:
		j.Status = storage.JobStatusSuccess
	case succeeded == 0:
		j.Status = storage.JobStatusFailed
	default:
		j.Status = storage.JobStatusPartialSuccess
	}

	now := time.Now()
	j.FinishedAt = &now
}

// Snapshot 返回任务状态快照（避免并发读写）
func (j *ScrapeJob) Snapshot() (status string, results []scraper.ScrapeResult, startedAt time.Time, finishedAt *time.Time) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	results = make([]scraper.ScrapeResult, len(j.Results))
	copy(results, j.Results)
	return j.Status, results, j.StartedAt, j.FinishedAt
}

// Counts 返回成功与失败数
func (j *ScrapeJob) Counts() (succeeded, failed int) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	for _, r := range j.Results {
		if r.URL == "" && r.ShowName == "" && r.Error == "" {
			continue // 尚未执行
		}
		if r.OK() {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}

// Record 转换为持久化记录
func (j *ScrapeJob) Record() *storage.ScrapeJobRecord {
	status, results, startedAt, finishedAt := j.Snapshot()
	succeeded, failed := j.Counts()

	record := &storage.ScrapeJobRecord{
		ID:         j.ID,
		Status:     status,
		Total:      len(j.URLs),
		Succeeded:  succeeded,
		Failed:     failed,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}
	if status == storage.JobStatusFailed || status == storage.JobStatusPartialSuccess {
		record.ErrorMessage = firstError(results)
	}
	return record
}

// firstError 返回结果中的第一个错误信息（内部方法）
func firstError(results []scraper.ScrapeResult) string {
	for _, r := range results {
		if r.Error != "" {
			return r.Error
		}
	}
	return ""
}
