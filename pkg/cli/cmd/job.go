package cmd

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/LENAX/hotstar-scraper/pkg/cli/output"
	"github.com/LENAX/hotstar-scraper/pkg/cli/scraperclient"
)

var jobListLimit int

// jobCmd job子命令
var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "抓取任务管理命令",
	Long:  `查询抓取任务的状态与结果。`,
}

// jobListCmd 列出任务
var jobListCmd = &cobra.Command{
	Use:   "list",
	Short: "列出抓取任务",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := scraperclient.New(serverURL)

		list, err := client.ListJobs(jobListLimit)
		if err != nil {
			output.Error("查询任务失败: %v", err)
			return err
		}

		if outputJSON {
			return output.PrintJSON(list)
		}

		if list.Total == 0 {
			output.Info("暂无抓取任务")
			return nil
		}

		table := output.NewTable([]string{"ID", "STATUS", "TOTAL", "OK", "FAIL", "STARTED", "DURATION"})
		for _, job := range list.Items {
			table.AddRow([]string{
				job.ID,
				job.Status,
				strconv.Itoa(job.Total),
				strconv.Itoa(job.Succeeded),
				strconv.Itoa(job.Failed),
				job.StartedAt.Format(time.RFC3339),
				job.Duration,
			})
		}
		table.Render()
		return nil
	},
}

// jobStatusCmd 查询任务状态
var jobStatusCmd = &cobra.Command{
	Use:   "status <job-id>",
	Short: "查询任务状态",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := scraperclient.New(serverURL)

		job, err := client.GetJob(args[0])
		if err != nil {
			output.Error("查询任务失败: %v", err)
			return err
		}

		if outputJSON {
			return output.PrintJSON(job)
		}

		output.Info("任务: %s", job.ID)
		output.Info("状态: %s", job.Status)
		output.Info("进度: 成功 %d / 失败 %d / 总计 %d", job.Succeeded, job.Failed, job.Total)
		if job.Duration != "" {
			output.Info("耗时: %s", job.Duration)
		}
		if job.ErrorMessage != "" {
			output.Warning("错误: %s", job.ErrorMessage)
		}
		return nil
	},
}

// jobResultsCmd 查询任务结果
var jobResultsCmd = &cobra.Command{
	Use:   "results <job-id>",
	Short: "查询任务的逐URL结果",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := scraperclient.New(serverURL)

		results, err := client.GetJobResults(args[0])
		if err != nil {
			output.Error("查询任务结果失败: %v", err)
			return err
		}

		if outputJSON {
			return output.PrintJSON(results)
		}

		renderResults(results.Items)
		return nil
	},
}

func init() {
	jobListCmd.Flags().IntVarP(&jobListLimit, "limit", "l", 20, "返回条数")

	jobCmd.AddCommand(jobListCmd)
	jobCmd.AddCommand(jobStatusCmd)
	jobCmd.AddCommand(jobResultsCmd)
}
