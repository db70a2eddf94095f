package engine_test

import (
	"fmt"
	"testing"

	"github.com/LENAX/hotstar-scraper/pkg/core/engine"
	"github.com/LENAX/hotstar-scraper/pkg/core/scraper"
	"github.com/LENAX/hotstar-scraper/pkg/storage"
)

func TestScrapeJob_StatusTransitions(t *testing.T) {
	job := engine.NewScrapeJob([]string{testShowURL1, testShowURL2})
	if job.Status != storage.JobStatusPending {
		t.Errorf("新任务状态应为Pending，实际为%s", job.Status)
	}

	job.SetRunning()
	status, _, startedAt, _ := job.Snapshot()
	if status != storage.JobStatusRunning {
		t.Errorf("任务状态应为Running，实际为%s", status)
	}
	if startedAt.IsZero() {
		t.Error("SetRunning后开始时间不应为零值")
	}
}

func TestScrapeJob_Finish(t *testing.T) {
	success := scraper.NewSuccessResult(testShowURL1, &scraper.Episode{Title: "Episode 100", ShowName: "Pandian Stores 2"})
	failure := scraper.NewFailureResult(testShowURL2, fmt.Errorf("页面加载超时"))

	tests := []struct {
		name    string
		results []scraper.ScrapeResult
		want    string
	}{
		{"全部成功", []scraper.ScrapeResult{success, success}, storage.JobStatusSuccess},
		{"全部失败", []scraper.ScrapeResult{failure, failure}, storage.JobStatusFailed},
		{"部分成功", []scraper.ScrapeResult{success, failure}, storage.JobStatusPartialSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := engine.NewScrapeJob([]string{testShowURL1, testShowURL2})
			job.SetRunning()
			for i, r := range tt.results {
				job.SetResult(i, r)
			}
			job.Finish()

			status, _, _, finishedAt := job.Snapshot()
			if status != tt.want {
				t.Errorf("最终状态应为%s，实际为%s", tt.want, status)
			}
			if finishedAt == nil {
				t.Error("Finish后结束时间不应为空")
			}
		})
	}
}

func TestScrapeJob_Counts(t *testing.T) {
	job := engine.NewScrapeJob([]string{testShowURL1, testShowURL2, testShowURL1})
	job.SetRunning()
	job.SetResult(0, scraper.NewSuccessResult(testShowURL1, &scraper.Episode{Title: "Episode 100", ShowName: "Pandian Stores 2"}))
	job.SetResult(1, scraper.NewFailureResult(testShowURL2, fmt.Errorf("页面加载超时")))

	// 第三个URL尚未执行，不计入成功或失败
	succeeded, failed := job.Counts()
	if succeeded != 1 || failed != 1 {
		t.Errorf("计数错误: Succeeded=%d, Failed=%d", succeeded, failed)
	}
}

func TestScrapeJob_Record(t *testing.T) {
	job := engine.NewScrapeJob([]string{testShowURL1, testShowURL2})
	job.SetRunning()
	job.SetResult(0, scraper.NewSuccessResult(testShowURL1, &scraper.Episode{Title: "Episode 100", ShowName: "Pandian Stores 2"}))
	job.SetResult(1, scraper.NewFailureResult(testShowURL2, fmt.Errorf("页面加载超时")))
	job.Finish()

	record := job.Record()
	if record.Total != 2 || record.Succeeded != 1 || record.Failed != 1 {
		t.Errorf("计数错误: Total=%d, Succeeded=%d, Failed=%d", record.Total, record.Succeeded, record.Failed)
	}
	if record.ErrorMessage != "页面加载超时" {
		t.Errorf("记录应保留第一个错误信息，实际为%q", record.ErrorMessage)
	}
}
