package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/LENAX/hotstar-scraper/pkg/browser"
	"github.com/LENAX/hotstar-scraper/pkg/cli/output"
)

var (
	provisionChromeBinary string
	provisionInstallDir   string
	provisionManifestURL  string
	provisionTimeout      time.Duration
)

// provisionCmd provision命令
var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "安装与Chrome版本匹配的chromedriver",
	Long: `检测本机Chrome版本，从Chrome-for-Testing版本清单解析Stable渠道的
chromedriver并安装到指定目录，主版本不一致时报错退出。

示例：
  # 安装到默认目录
  hotstar-scraper provision

  # 指定Chrome二进制与安装目录
  hotstar-scraper provision --chrome /usr/bin/google-chrome --dir /usr/local/bin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), provisionTimeout)
		defer cancel()

		output.Info("检测Chrome版本: %s", provisionChromeBinary)

		installer := browser.NewInstaller(provisionManifestURL, provisionInstallDir)
		report, err := installer.Provision(ctx, provisionChromeBinary)
		if err != nil {
			output.Error("chromedriver安装失败: %v", err)
			return err
		}

		if outputJSON {
			return output.PrintJSON(report)
		}

		output.Info("Chrome版本: %s", report.ChromeVersion)
		output.Info("chromedriver版本: %s", report.DriverVersion)
		output.Success("chromedriver已安装: %s", report.DriverPath)
		return nil
	},
}

func init() {
	provisionCmd.Flags().StringVar(&provisionChromeBinary, "chrome", browser.DefaultChromeBinary, "Chrome二进制路径")
	provisionCmd.Flags().StringVar(&provisionInstallDir, "dir", browser.DefaultInstallDir, "chromedriver安装目录")
	provisionCmd.Flags().StringVar(&provisionManifestURL, "manifest", browser.DefaultManifestURL, "Chrome-for-Testing版本清单地址")
	provisionCmd.Flags().DurationVar(&provisionTimeout, "timeout", 2*time.Minute, "安装超时")
}
