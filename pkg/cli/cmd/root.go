package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// 全局变量
	serverURL  string
	outputJSON bool
)

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "hotstar-scraper",
	Short: "Hotstar Scraper CLI - 剧集抓取服务命令行工具",
	Long: `Hotstar Scraper CLI 是一个用于抓取Hotstar剧集最新单集信息的命令行工具。

支持的功能：
  - 管理剧集（注册、列出、删除、单独抓取）
  - 提交与查询抓取任务
  - 查询历史抓取记录
  - 安装与Chrome版本匹配的chromedriver
  - 启动HTTP API服务

使用示例：
  # 注册剧集
  hotstar-scraper show add https://www.hotstar.com/in/shows/pandian-stores-2/1260000603/watch

  # 抓取所有已启用剧集
  hotstar-scraper scrape

  # 安装chromedriver
  hotstar-scraper provision

  # 启动HTTP服务
  hotstar-scraper server start --port 8080`,
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// 全局参数
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:8080", "Hotstar Scraper服务器地址")
	rootCmd.PersistentFlags().BoolVarP(&outputJSON, "json", "j", false, "使用JSON格式输出")

	// 添加子命令
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(jobCmd)
	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(provisionCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(versionCmd)
}
