package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load 加载配置文件
// 文件不存在时返回默认配置；环境变量覆盖在YAML之后应用
func Load(path string) (*Config, error) {
	// 加载.env文件（不存在时忽略）
	godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides 应用环境变量覆盖（内部方法）
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SCRAPER_HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Port = port
		}
	}
	if v := os.Getenv("SCRAPER_DB_TYPE"); v != "" {
		cfg.Database.Type = v
	}
	if v := os.Getenv("SCRAPER_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SCRAPER_CHROMEDRIVER_PATH"); v != "" {
		cfg.Browser.ChromedriverPath = v
	}
	if v := os.Getenv("SCRAPER_MANIFEST_URL"); v != "" {
		cfg.Browser.ManifestURL = v
	}
	// DISPLAY形如":99"
	if v := os.Getenv("DISPLAY"); v != "" && len(v) > 1 && v[0] == ':' {
		if n, err := strconv.Atoi(v[1:]); err == nil {
			cfg.Browser.DisplayNumber = n
		}
	}
}
