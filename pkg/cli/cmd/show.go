package cmd

import (
	"github.com/spf13/cobra"

	"github.com/LENAX/hotstar-scraper/pkg/cli/output"
	"github.com/LENAX/hotstar-scraper/pkg/cli/scraperclient"
)

// showCmd show子命令
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "剧集管理命令",
	Long:  `管理已注册的Hotstar剧集。`,
}

// showListCmd 列出剧集
var showListCmd = &cobra.Command{
	Use:   "list",
	Short: "列出已注册剧集",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := scraperclient.New(serverURL)

		list, err := client.ListShows()
		if err != nil {
			output.Error("查询剧集失败: %v", err)
			return err
		}

		if outputJSON {
			return output.PrintJSON(list)
		}

		if list.Total == 0 {
			output.Info("暂无已注册剧集")
			return nil
		}

		table := output.NewTable([]string{"ID", "NAME", "URL", "ENABLED"})
		for _, show := range list.Items {
			enabled := "yes"
			if !show.Enabled {
				enabled = "no"
			}
			table.AddRow([]string{show.ID, show.Name, output.Truncate(show.URL, 60), enabled})
		}
		table.Render()
		return nil
	},
}

// showAddCmd 注册剧集
var showAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "注册剧集",
	Long: `注册一个Hotstar剧集URL，剧名自动从URL推导。

示例：
  hotstar-scraper show add https://www.hotstar.com/in/shows/pandian-stores-2/1260000603/watch`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := scraperclient.New(serverURL)

		show, err := client.RegisterShow(args[0])
		if err != nil {
			output.Error("注册剧集失败: %v", err)
			return err
		}

		if outputJSON {
			return output.PrintJSON(show)
		}

		output.Success("剧集已注册: %s (ID: %s)", show.Name, show.ID)
		return nil
	},
}

// showRemoveCmd 删除剧集
var showRemoveCmd = &cobra.Command{
	Use:   "remove <show-id>",
	Short: "删除剧集",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := scraperclient.New(serverURL)

		if err := client.DeleteShow(args[0]); err != nil {
			output.Error("删除剧集失败: %v", err)
			return err
		}

		output.Success("剧集已删除: %s", args[0])
		return nil
	},
}

// showScrapeCmd 抓取单个剧集
var showScrapeCmd = &cobra.Command{
	Use:   "scrape <show-id>",
	Short: "抓取单个剧集",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := scraperclient.New(serverURL)

		resp, err := client.ScrapeShow(args[0])
		if err != nil {
			output.Error("提交抓取任务失败: %v", err)
			return err
		}

		if outputJSON {
			return output.PrintJSON(resp)
		}

		output.Success("抓取任务已提交: JobID=%s", resp.JobID)
		output.Info("查看进度: hotstar-scraper job status %s", resp.JobID)
		return nil
	},
}

func init() {
	showCmd.AddCommand(showListCmd)
	showCmd.AddCommand(showAddCmd)
	showCmd.AddCommand(showRemoveCmd)
	showCmd.AddCommand(showScrapeCmd)
}
