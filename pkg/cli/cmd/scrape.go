package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/LENAX/hotstar-scraper/pkg/cli/output"
	"github.com/LENAX/hotstar-scraper/pkg/cli/scraperclient"
	"github.com/LENAX/hotstar-scraper/pkg/core/scraper"
	"github.com/LENAX/hotstar-scraper/pkg/storage"
)

var scrapeWaitTimeout time.Duration

// scrapeCmd scrape命令
var scrapeCmd = &cobra.Command{
	Use:   "scrape [url...]",
	Short: "抓取剧集最新单集",
	Long: `抓取剧集最新单集信息。

不带参数时同步抓取所有已启用的剧集；指定URL时提交异步任务并等待完成。

示例：
  # 抓取所有已启用剧集
  hotstar-scraper scrape

  # 抓取指定URL
  hotstar-scraper scrape https://www.hotstar.com/in/shows/pandian-stores-2/1260000603/watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := scraperclient.New(serverURL)

		if len(args) == 0 {
			results, err := client.ScrapeAll()
			if err != nil {
				output.Error("抓取失败: %v", err)
				return err
			}

			if outputJSON {
				return output.PrintJSON(results)
			}
			renderResults(results)
			return nil
		}

		// 指定URL：提交异步任务并轮询完成
		submitted, err := client.SubmitJob(args)
		if err != nil {
			output.Error("提交抓取任务失败: %v", err)
			return err
		}
		output.Info("抓取任务已提交: JobID=%s", submitted.JobID)

		deadline := time.Now().Add(scrapeWaitTimeout)
		for {
			if time.Now().After(deadline) {
				output.Warning("等待超时，任务仍在执行: JobID=%s", submitted.JobID)
				return fmt.Errorf("等待任务完成超时")
			}

			job, err := client.GetJob(submitted.JobID)
			if err != nil {
				output.Error("查询任务失败: %v", err)
				return err
			}
			if job.Status != storage.JobStatusPending && job.Status != storage.JobStatusRunning {
				break
			}
			time.Sleep(time.Second)
		}

		results, err := client.GetJobResults(submitted.JobID)
		if err != nil {
			output.Error("查询任务结果失败: %v", err)
			return err
		}

		if outputJSON {
			return output.PrintJSON(results.Items)
		}
		renderResults(results.Items)
		return nil
	},
}

// renderResults 以表格渲染抓取结果
func renderResults(results []scraper.ScrapeResult) {
	table := output.NewTable([]string{"NAME", "TITLE", "DATE", "ERROR"})
	succeeded := 0
	for _, r := range results {
		if r.OK() {
			succeeded++
		}
		table.AddRow([]string{
			r.ShowName,
			output.Truncate(r.Title, 40),
			r.AirDate,
			output.Truncate(r.Error, 40),
		})
	}
	table.Render()

	if succeeded == len(results) {
		output.Success("抓取完成: %d/%d 成功", succeeded, len(results))
	} else {
		output.Warning("抓取完成: %d/%d 成功", succeeded, len(results))
	}
}

func init() {
	scrapeCmd.Flags().DurationVarP(&scrapeWaitTimeout, "timeout", "t", 5*time.Minute, "等待任务完成的超时")
}
