// Package config 提供服务配置的加载与校验
package config

import "time"

// Config 服务核心配置
type Config struct {
	Mode string `yaml:"mode"` // dev/release

	HTTP struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"http"`

	Database struct {
		Type         string `yaml:"type"` // sqlite/mysql/postgres
		DSN          string `yaml:"dsn"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
	} `yaml:"database"`

	Browser struct {
		ChromeBinary     string `yaml:"chrome_binary"`     // Chrome二进制（默认google-chrome）
		ChromedriverPath string `yaml:"chromedriver_path"` // chromedriver路径
		ChromedriverPort int    `yaml:"chromedriver_port"` // chromedriver监听端口
		InstallDir       string `yaml:"install_dir"`       // chromedriver安装目录
		ManifestURL      string `yaml:"manifest_url"`      // Chrome-for-Testing版本清单地址
		DisplayNumber    int    `yaml:"display_number"`    // 虚拟显示编号（默认99）
		ScreenWidth      int    `yaml:"screen_width"`
		ScreenHeight     int    `yaml:"screen_height"`
		ScreenDepth      int    `yaml:"screen_depth"`
	} `yaml:"browser"`

	Scraper struct {
		Headless       bool   `yaml:"headless"`
		PageTimeout    string `yaml:"page_timeout"`    // 等待剧集卡片的超时（如"15s"）
		ScrollWait     string `yaml:"scroll_wait"`     // 滚动后懒加载等待（如"3s"）
		MaxConcurrency int    `yaml:"max_concurrency"` // 批量抓取并发上限
	} `yaml:"scraper"`

	Schedule struct {
		Enabled  bool   `yaml:"enabled"`
		CronExpr string `yaml:"cron_expr"` // 秒级精度cron表达式
	} `yaml:"schedule"`

	// Shows 启动时注册的剧集URL列表
	Shows []string `yaml:"shows"`
}

// Default 返回默认配置（配置文件缺失时使用）
func Default() *Config {
	cfg := &Config{Mode: "dev"}
	cfg.HTTP.Host = "0.0.0.0"
	cfg.HTTP.Port = 8080
	cfg.Database.Type = "sqlite"
	cfg.Database.DSN = "./data/scraper.db"
	cfg.Database.MaxOpenConns = 10
	cfg.Database.MaxIdleConns = 2
	cfg.Browser.ChromeBinary = "google-chrome"
	cfg.Browser.ChromedriverPath = "/usr/local/bin/chromedriver"
	cfg.Browser.ChromedriverPort = 9515
	cfg.Browser.InstallDir = "/usr/local/bin"
	cfg.Browser.DisplayNumber = 99
	cfg.Browser.ScreenWidth = 1024
	cfg.Browser.ScreenHeight = 768
	cfg.Browser.ScreenDepth = 24
	cfg.Scraper.Headless = true
	cfg.Scraper.PageTimeout = "15s"
	cfg.Scraper.ScrollWait = "3s"
	cfg.Scraper.MaxConcurrency = 2
	cfg.Schedule.CronExpr = "0 0 * * * *"
	return cfg
}

// PageTimeoutDuration 解析页面超时配置
func (c *Config) PageTimeoutDuration() time.Duration {
	return parseDurationOr(c.Scraper.PageTimeout, 15*time.Second)
}

// ScrollWaitDuration 解析懒加载等待配置
func (c *Config) ScrollWaitDuration() time.Duration {
	return parseDurationOr(c.Scraper.ScrollWait, 3*time.Second)
}

// parseDurationOr 解析时长，失败时返回默认值（内部方法）
func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
