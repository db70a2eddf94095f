package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Validate 校验配置合法性
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("配置不能为空")
	}

	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return fmt.Errorf("http.port必须在1-65535之间")
	}

	validDBTypes := map[string]bool{
		"sqlite":     true,
		"mysql":      true,
		"postgres":   true,
		"postgresql": true,
	}
	if !validDBTypes[cfg.Database.Type] {
		return fmt.Errorf("database.type必须是sqlite/mysql/postgres之一")
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn不能为空")
	}
	if cfg.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns必须大于0")
	}
	if cfg.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns不能为负数")
	}

	if cfg.Browser.DisplayNumber <= 0 {
		return fmt.Errorf("browser.display_number必须大于0")
	}
	if cfg.Browser.ChromedriverPort <= 0 {
		return fmt.Errorf("browser.chromedriver_port必须大于0")
	}

	if cfg.Scraper.MaxConcurrency <= 0 {
		return fmt.Errorf("scraper.max_concurrency必须大于0")
	}
	if cfg.PageTimeoutDuration() <= 0 {
		return fmt.Errorf("scraper.page_timeout必须大于0")
	}

	if cfg.Schedule.Enabled {
		parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		if _, err := parser.Parse(cfg.Schedule.CronExpr); err != nil {
			return fmt.Errorf("schedule.cron_expr无效: %w", err)
		}
	}

	return nil
}
