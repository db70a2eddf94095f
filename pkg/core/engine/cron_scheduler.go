package engine

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// CronScheduler 定时调度器（对外导出）
// 按Cron表达式周期性抓取所有启用的剧集
type CronScheduler struct {
	cron    *cron.Cron
	engine  *Engine
	entryID cron.EntryID
	expr    string
	mu      sync.RWMutex
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewCronScheduler 创建定时调度器（对外导出）
func NewCronScheduler(eng *Engine) *CronScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &CronScheduler{
		cron:   cron.New(cron.WithSeconds()), // 支持秒级精度
		engine: eng,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Register 注册定时抓取表达式（对外导出）
// 重复注册会替换已有的调度任务
func (cs *CronScheduler) Register(cronExpr string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cronExpr == "" {
		return fmt.Errorf("Cron表达式不能为空")
	}

	// 验证Cron表达式（使用Parser支持秒级精度）
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(cronExpr); err != nil {
		return fmt.Errorf("Cron表达式无效: %w", err)
	}

	// 替换已有调度任务
	if cs.expr != "" {
		cs.cron.Remove(cs.entryID)
	}

	entryID, err := cs.cron.AddFunc(cronExpr, cs.triggerScrape)
	if err != nil {
		return fmt.Errorf("添加Cron任务失败: %w", err)
	}

	cs.entryID = entryID
	cs.expr = cronExpr
	log.Printf("✅ [Cron调度器] 已注册定时抓取: CronExpr=%s", cronExpr)
	return nil
}

// Unregister 取消定时抓取（对外导出）
func (cs *CronScheduler) Unregister() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.expr == "" {
		return fmt.Errorf("未注册定时抓取任务")
	}

	cs.cron.Remove(cs.entryID)
	cs.expr = ""
	log.Println("✅ [Cron调度器] 已取消定时抓取")
	return nil
}

// triggerScrape 触发全量抓取（内部方法）
func (cs *CronScheduler) triggerScrape() {
	log.Println("🕐 [Cron调度器] 触发定时抓取")

	urls, err := cs.engine.EnabledShowURLs(cs.ctx)
	if err != nil {
		log.Printf("❌ [Cron调度器] 查询启用剧集失败: Error=%v", err)
		return
	}
	if len(urls) == 0 {
		log.Println("⚠️ [Cron调度器] 无启用剧集，跳过本次抓取")
		return
	}

	job, err := cs.engine.SubmitJob(cs.ctx, urls)
	if err != nil {
		log.Printf("❌ [Cron调度器] 提交抓取任务失败: Error=%v", err)
		return
	}
	log.Printf("✅ [Cron调度器] 抓取任务已提交: JobID=%s, URLs=%d", job.ID, len(urls))
}

// Expr 返回当前注册的Cron表达式（对外导出）
func (cs *CronScheduler) Expr() string {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.expr
}

// Start 启动定时调度器（对外导出）
func (cs *CronScheduler) Start() {
	cs.cron.Start()
	log.Println("✅ [Cron调度器] 已启动")
}

// Stop 停止定时调度器（对外导出）
func (cs *CronScheduler) Stop() {
	cs.cron.Stop()
	cs.cancel()
	log.Println("✅ [Cron调度器] 已停止")
}
