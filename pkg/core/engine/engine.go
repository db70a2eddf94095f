// Package engine 提供抓取任务的调度执行核心
package engine

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LENAX/hotstar-scraper/pkg/core/events"
	"github.com/LENAX/hotstar-scraper/pkg/core/scraper"
	"github.com/LENAX/hotstar-scraper/pkg/storage"
)

// Engine 抓取引擎核心结构体（对外导出）
// 负责任务提交、并发执行、事件发布与结果持久化
type Engine struct {
	scraper        scraper.ShowScraper
	bus            *events.EventBus
	repo           storage.Repository
	maxConcurrency int

	jobs          sync.Map // jobID -> *ScrapeJob
	cronScheduler *CronScheduler

	running bool
	mu      sync.RWMutex
}

// NewEngine 创建Engine实例（对外导出的工厂方法）
func NewEngine(sc scraper.ShowScraper, bus *events.EventBus, repo storage.Repository, maxConcurrency int) (*Engine, error) {
	if sc == nil {
		return nil, fmt.Errorf("抓取器不能为空")
	}
	if bus == nil {
		return nil, fmt.Errorf("事件总线不能为空")
	}
	if repo == nil {
		return nil, fmt.Errorf("存储不能为空")
	}
	if maxConcurrency <= 0 {
		maxConcurrency = 2
	}

	eng := &Engine{
		scraper:        sc,
		bus:            bus,
		repo:           repo,
		maxConcurrency: maxConcurrency,
	}
	eng.cronScheduler = NewCronScheduler(eng)
	return eng, nil
}

// Start 启动引擎
// 注册抓取记录持久化订阅并启动事件总线
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return fmt.Errorf("引擎已启动")
	}

	// 抓取成功事件 -> 持久化剧集记录
	if err := e.bus.Subscribe("episode_persister", events.EventShowScraped, e.persistEpisode); err != nil {
		return fmt.Errorf("注册持久化订阅失败: %w", err)
	}

	if err := e.bus.Start(); err != nil {
		return err
	}

	e.running = true
	log.Println("✅ [引擎] 已启动")
	return nil
}

// Stop 停止引擎
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return nil
	}

	e.cronScheduler.Stop()
	if err := e.bus.Close(); err != nil {
		log.Printf("⚠️ [引擎] 关闭事件总线失败: %v", err)
	}
	e.running = false
	log.Println("✅ [引擎] 已停止")
	return nil
}

// EventBus 返回事件总线（供API层订阅推送）
func (e *Engine) EventBus() *events.EventBus {
	return e.bus
}

// CronScheduler 返回定时调度器
func (e *Engine) CronScheduler() *CronScheduler {
	return e.cronScheduler
}

// SubmitJob 提交批量抓取任务（异步执行）
func (e *Engine) SubmitJob(ctx context.Context, urls []string) (*ScrapeJob, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("剧集URL列表不能为空")
	}

	job := NewScrapeJob(urls)
	e.jobs.Store(job.ID, job)

	e.publish(ctx, events.NewScrapeEvent(events.EventJobSubmitted, job.ID, "", &events.JobSubmittedPayload{URLs: urls}))
	log.Printf("🕐 [引擎] 任务已提交: JobID=%s, URLs=%d", job.ID, len(urls))

	go e.runJob(context.Background(), job)
	return job, nil
}

// ScrapeNow 同步抓取并返回按URL顺序的结果
// 供/scrape兼容接口与CLI一次性抓取使用
func (e *Engine) ScrapeNow(ctx context.Context, urls []string) []scraper.ScrapeResult {
	if len(urls) == 0 {
		return []scraper.ScrapeResult{}
	}

	job := NewScrapeJob(urls)
	e.jobs.Store(job.ID, job)
	e.runJob(ctx, job)

	_, results, _, _ := job.Snapshot()
	return results
}

// GetJob 查询任务（优先内存，其次存储）
func (e *Engine) GetJob(ctx context.Context, id string) (*storage.ScrapeJobRecord, error) {
	if value, ok := e.jobs.Load(id); ok {
		return value.(*ScrapeJob).Record(), nil
	}
	return e.repo.GetJob(ctx, id)
}

// GetJobResults 查询任务的逐URL结果（仅内存中的任务可用）
func (e *Engine) GetJobResults(id string) ([]scraper.ScrapeResult, bool) {
	value, ok := e.jobs.Load(id)
	if !ok {
		return nil, false
	}
	_, results, _, _ := value.(*ScrapeJob).Snapshot()
	return results, true
}

// ListJobs 列出任务记录
func (e *Engine) ListJobs(ctx context.Context, limit int) ([]*storage.ScrapeJobRecord, error) {
	return e.repo.ListJobs(ctx, limit)
}

// ========== 剧集管理 ==========

// RegisterShow 注册剧集（URL已存在时返回已有记录）
func (e *Engine) RegisterShow(ctx context.Context, url string) (*storage.Show, error) {
	if url == "" {
		return nil, fmt.Errorf("剧集URL不能为空")
	}

	existing, err := e.repo.GetShowByURL(ctx, url)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	show := &storage.Show{
		ID:         uuid.NewString(),
		Name:       scraper.FormatShowName(url),
		URL:        url,
		Enabled:    true,
		CreateTime: time.Now().Truncate(time.Second),
	}
	if err := e.repo.SaveShow(ctx, show); err != nil {
		return nil, err
	}

	log.Printf("✅ [引擎] 剧集已注册: ID=%s, Name=%s", show.ID, show.Name)
	return show, nil
}

// GetShow 查询剧集
func (e *Engine) GetShow(ctx context.Context, id string) (*storage.Show, error) {
	return e.repo.GetShow(ctx, id)
}

// ListShows 列出已注册剧集
func (e *Engine) ListShows(ctx context.Context) ([]*storage.Show, error) {
	return e.repo.ListShows(ctx)
}

// RemoveShow 删除剧集
func (e *Engine) RemoveShow(ctx context.Context, id string) error {
	return e.repo.DeleteShow(ctx, id)
}

// ListEpisodes 查询历史抓取记录
func (e *Engine) ListEpisodes(ctx context.Context, showName string, limit int) ([]*storage.EpisodeRecord, error) {
	return e.repo.ListEpisodes(ctx, showName, limit)
}

// EnabledShowURLs 返回所有启用剧集的URL（定时调度使用）
func (e *Engine) EnabledShowURLs(ctx context.Context) ([]string, error) {
	shows, err := e.repo.ListShows(ctx)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(shows))
	for _, show := range shows {
		if show.Enabled {
			urls = append(urls, show.URL)
		}
	}
	sort.Strings(urls)
	return urls, nil
}

// ========== 任务执行（内部方法） ==========

// runJob 执行任务：按并发上限逐URL抓取，结果保持提交顺序
func (e *Engine) runJob(ctx context.Context, job *ScrapeJob) {
	job.SetRunning()
	e.saveJob(ctx, job)

	sem := make(chan struct{}, e.maxConcurrency)
	var wg sync.WaitGroup

	for i, url := range job.URLs {
		wg.Add(1)
		sem <- struct{}{}
		go func(index int, showURL string) {
			defer wg.Done()
			defer func() { <-sem }()
			job.SetResult(index, e.scrapeOne(ctx, job.ID, showURL))
		}(i, url)
	}
	wg.Wait()

	job.Finish()
	e.saveJob(ctx, job)

	status, _, startedAt, _ := job.Snapshot()
	succeeded, failed := job.Counts()

	e.publish(ctx, events.NewScrapeEvent(events.EventJobCompleted, job.ID, "", &events.JobCompletedPayload{
		Status:    status,
		Total:     len(job.URLs),
		Succeeded: succeeded,
		Failed:    failed,
		Duration:  time.Since(startedAt).Round(time.Millisecond).String(),
	}))
	log.Printf("✅ [引擎] 任务已完成: JobID=%s, Status=%s, 成功=%d, 失败=%d", job.ID, status, succeeded, failed)
}

// scrapeOne 抓取单个剧集URL并发布事件
func (e *Engine) scrapeOne(ctx context.Context, jobID, url string) scraper.ScrapeResult {
	e.publish(ctx, events.NewScrapeEvent(events.EventShowStarted, jobID, url, nil))

	episode, err := e.scraper.ScrapeShow(ctx, url)
	if err != nil {
		log.Printf("❌ [引擎] 剧集抓取失败: JobID=%s, URL=%s, Error=%v", jobID, url, err)
		e.publish(ctx, events.NewScrapeEvent(events.EventShowFailed, jobID, url, &events.ShowFailedPayload{
			ShowName: scraper.FormatShowName(url),
			Error:    err.Error(),
		}))
		return scraper.NewFailureResult(url, err)
	}

	e.publish(ctx, events.NewScrapeEvent(events.EventShowScraped, jobID, url, &events.ShowScrapedPayload{
		ShowName:    episode.ShowName,
		Title:       episode.Title,
		Description: episode.Description,
		AirDate:     episode.AirDate,
	}))
	return scraper.NewSuccessResult(url, episode)
}

// persistEpisode 持久化抓取成功的剧集记录（事件订阅回调）
func (e *Engine) persistEpisode(event *events.ScrapeEvent) error {
	payload, err := events.DecodePayload[events.ShowScrapedPayload](event.Payload)
	if err != nil {
		return err
	}

	record := &storage.EpisodeRecord{
		ID:          uuid.NewString(),
		JobID:       event.JobID,
		ShowName:    payload.ShowName,
		ShowURL:     event.ShowURL,
		Title:       payload.Title,
		Description: payload.Description,
		AirDate:     payload.AirDate,
		ScrapedAt:   event.Timestamp.Truncate(time.Second),
	}
	if err := e.repo.SaveEpisode(context.Background(), record); err != nil {
		log.Printf("⚠️ [引擎] 持久化抓取记录失败: JobID=%s, Error=%v", event.JobID, err)
		return err
	}
	return nil
}

// saveJob 持久化任务记录（内部方法）
func (e *Engine) saveJob(ctx context.Context, job *ScrapeJob) {
	if err := e.repo.SaveJob(ctx, job.Record()); err != nil {
		log.Printf("⚠️ [引擎] 持久化任务记录失败: JobID=%s, Error=%v", job.ID, err)
	}
}

// publish 发布事件（失败仅记录日志）
func (e *Engine) publish(ctx context.Context, event *events.ScrapeEvent) {
	if err := e.bus.Publish(ctx, event); err != nil {
		log.Printf("⚠️ [引擎] 发布事件失败: Type=%s, Error=%v", event.Type, err)
	}
}
