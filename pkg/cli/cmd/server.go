package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/LENAX/hotstar-scraper/internal/storage"
	"github.com/LENAX/hotstar-scraper/pkg/api"
	"github.com/LENAX/hotstar-scraper/pkg/browser"
	"github.com/LENAX/hotstar-scraper/pkg/cli/output"
	"github.com/LENAX/hotstar-scraper/pkg/config"
	"github.com/LENAX/hotstar-scraper/pkg/core/engine"
	"github.com/LENAX/hotstar-scraper/pkg/core/events"
	"github.com/LENAX/hotstar-scraper/pkg/core/scraper"
)

var (
	serverPort    int
	serverHost    string
	configPath    string
	skipProvision bool
	skipXvfb      bool
)

// serverCmd server子命令
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "服务管理命令",
	Long:  `管理Hotstar Scraper HTTP API服务。`,
}

// serverStartCmd 启动服务
var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "启动HTTP API服务",
	Long: `启动Hotstar Scraper HTTP API服务。

启动流程：安装chromedriver（可跳过）、启动Xvfb虚拟显示（可跳过）、
启动chromedriver与抓取引擎、开启HTTP监听。

示例：
  # 使用默认配置启动
  hotstar-scraper server start

  # 指定端口与配置文件
  hotstar-scraper server start --port 8080 --config ./configs/scraper.yaml

  # 本机已有chromedriver与显示环境时
  hotstar-scraper server start --skip-provision --skip-xvfb`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 加载配置
		cfg, err := config.Load(configPath)
		if err != nil {
			output.Error("加载配置失败: %v", err)
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.HTTP.Port = serverPort
		}
		if cmd.Flags().Changed("host") {
			cfg.HTTP.Host = serverHost
		}
		if err := config.Validate(cfg); err != nil {
			output.Error("配置校验失败: %v", err)
			return err
		}

		ctx := context.Background()

		// 安装chromedriver
		driverPath := cfg.Browser.ChromedriverPath
		if !skipProvision {
			installer := browser.NewInstaller(cfg.Browser.ManifestURL, cfg.Browser.InstallDir)
			report, err := installer.Provision(ctx, cfg.Browser.ChromeBinary)
			if err != nil {
				output.Error("chromedriver安装失败: %v", err)
				return err
			}
			driverPath = report.DriverPath
			output.Success("chromedriver已就绪: %s (版本%s)", report.DriverPath, report.DriverVersion)
		}

		// 启动Xvfb虚拟显示
		if !skipXvfb {
			display := browser.NewDisplay(
				cfg.Browser.DisplayNumber,
				cfg.Browser.ScreenWidth,
				cfg.Browser.ScreenHeight,
				cfg.Browser.ScreenDepth,
			)
			if err := display.Start(ctx); err != nil {
				output.Error("启动Xvfb失败: %v", err)
				return err
			}
			defer display.Stop()
			if err := display.Export(); err != nil {
				output.Error("设置DISPLAY失败: %v", err)
				return err
			}
			output.Success("虚拟显示已启动: DISPLAY=%s", display.Name())
		}

		// 创建抓取器
		chromeScraper := scraper.NewChromeScraper(scraper.Options{
			DriverPath:  driverPath,
			Port:        cfg.Browser.ChromedriverPort,
			Headless:    cfg.Scraper.Headless,
			PageTimeout: cfg.PageTimeoutDuration(),
			ScrollWait:  cfg.ScrollWaitDuration(),
		})
		if err := chromeScraper.Start(); err != nil {
			output.Error("启动chromedriver失败: %v", err)
			return err
		}
		defer chromeScraper.Stop()

		// 创建存储
		repo, err := storage.NewRepository(
			cfg.Database.Type,
			cfg.Database.DSN,
			cfg.Database.MaxOpenConns,
			cfg.Database.MaxIdleConns,
		)
		if err != nil {
			output.Error("初始化存储失败: %v", err)
			return err
		}
		defer repo.Close()

		// 创建事件总线与引擎
		bus, err := events.NewEventBus(cfg.Mode == "dev")
		if err != nil {
			output.Error("创建事件总线失败: %v", err)
			return err
		}

		eng, err := engine.NewEngine(chromeScraper, bus, repo, cfg.Scraper.MaxConcurrency)
		if err != nil {
			output.Error("创建引擎失败: %v", err)
			return err
		}
		if err := eng.Start(ctx); err != nil {
			output.Error("启动引擎失败: %v", err)
			return err
		}

		// 注册配置中的剧集
		for _, showURL := range cfg.Shows {
			if _, err := eng.RegisterShow(ctx, showURL); err != nil {
				output.Warning("注册剧集失败: %s (%v)", showURL, err)
			}
		}

		// 定时调度
		if cfg.Schedule.Enabled {
			if err := eng.CronScheduler().Register(cfg.Schedule.CronExpr); err != nil {
				output.Error("注册定时抓取失败: %v", err)
				return err
			}
			eng.CronScheduler().Start()
		}

		// 创建API服务器
		serverConfig := api.ServerConfig{
			Host:         cfg.HTTP.Host,
			Port:         cfg.HTTP.Port,
			ReadTimeout:  api.DefaultServerConfig().ReadTimeout,
			WriteTimeout: api.DefaultServerConfig().WriteTimeout,
			DefaultShows: cfg.Shows,
		}
		apiServer := api.NewAPIServer(eng, serverConfig, Version)

		// 在goroutine中启动服务器
		go func() {
			if err := apiServer.Start(); err != nil {
				log.Printf("API服务器错误: %v", err)
			}
		}()

		output.Success("Hotstar Scraper Server started on %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)

		// 等待中断信号
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		output.Info("正在关闭服务...")

		// 优雅关闭
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			output.Error("关闭API服务器失败: %v", err)
		}
		if err := eng.Stop(shutdownCtx); err != nil {
			output.Error("停止引擎失败: %v", err)
		}

		output.Success("服务已停止")
		return nil
	},
}

func init() {
	serverStartCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "监听端口")
	serverStartCmd.Flags().StringVarP(&serverHost, "host", "H", "0.0.0.0", "监听地址")
	serverStartCmd.Flags().StringVarP(&configPath, "config", "c", "./configs/scraper.yaml", "配置文件路径")
	serverStartCmd.Flags().BoolVar(&skipProvision, "skip-provision", false, "跳过chromedriver安装")
	serverStartCmd.Flags().BoolVar(&skipXvfb, "skip-xvfb", false, "跳过Xvfb虚拟显示")

	serverCmd.AddCommand(serverStartCmd)
}
