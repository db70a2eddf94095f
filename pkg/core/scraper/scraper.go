// Package scraper 提供Hotstar剧集页的浏览器抓取能力
// 通过chromedriver（WebDriver协议）驱动无头Chrome加载页面，
// 等待剧集卡片渲染并触发懒加载后，用goquery解析最新一集的元数据。
package scraper

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

// ShowScraper 剧集抓取接口（对外导出）
type ShowScraper interface {
	// ScrapeShow 抓取单个剧集URL的最新一集元数据
	ScrapeShow(ctx context.Context, url string) (*Episode, error)
}

// Options 抓取器配置
type Options struct {
	DriverPath  string        // chromedriver二进制路径
	Port        int           // chromedriver监听端口
	ChromePath  string        // Chrome二进制路径（空则由chromedriver自动查找）
	Headless    bool          // 是否无头模式
	PageTimeout time.Duration // 等待剧集卡片出现的超时
	ScrollWait  time.Duration // 滚动后等待懒加载的时长
}

// 默认配置值
const (
	DefaultDriverPath  = "/usr/local/bin/chromedriver"
	DefaultDriverPort  = 9515
	DefaultPageTimeout = 15 * time.Second
	DefaultScrollWait  = 3 * time.Second
)

// scrollScript 滚动到页面底部以触发懒加载
const scrollScript = "window.scrollTo(0, document.body.scrollHeight);"

// ChromeScraper 基于chromedriver的抓取器实现（对外导出）
// 进程内只启动一个chromedriver服务，每次抓取创建独立的浏览器会话
type ChromeScraper struct {
	opts    Options
	service *selenium.Service
	addr    string
}

// NewChromeScraper 创建ChromeScraper（对外导出的工厂方法）
func NewChromeScraper(opts Options) *ChromeScraper {
	if opts.DriverPath == "" {
		opts.DriverPath = DefaultDriverPath
	}
	if opts.Port <= 0 {
		opts.Port = DefaultDriverPort
	}
	if opts.PageTimeout <= 0 {
		opts.PageTimeout = DefaultPageTimeout
	}
	if opts.ScrollWait <= 0 {
		opts.ScrollWait = DefaultScrollWait
	}
	return &ChromeScraper{
		opts: opts,
		// chromedriver以--url-base=wd/hub启动，WebDriver端点挂在/wd/hub之下
		addr: fmt.Sprintf("http://localhost:%d/wd/hub", opts.Port),
	}
}

// Start 启动chromedriver服务
// chromedriver继承当前进程环境变量（包括DISPLAY）
func (s *ChromeScraper) Start() error {
	if s.service != nil {
		return fmt.Errorf("chromedriver服务已启动")
	}

	service, err := selenium.NewChromeDriverService(s.opts.DriverPath, s.opts.Port)
	if err != nil {
		return fmt.Errorf("启动chromedriver失败: %w", err)
	}
	s.service = service

	log.Printf("✅ [抓取器] chromedriver已启动: path=%s, port=%d", s.opts.DriverPath, s.opts.Port)
	return nil
}

// Stop 停止chromedriver服务
func (s *ChromeScraper) Stop() error {
	if s.service == nil {
		return nil
	}
	err := s.service.Stop()
	s.service = nil
	if err != nil {
		return fmt.Errorf("停止chromedriver失败: %w", err)
	}
	log.Println("✅ [抓取器] chromedriver已停止")
	return nil
}

// ScrapeShow 抓取单个剧集URL的最新一集元数据
// 每次调用创建独立会话与独立的user-data-dir，结束后清理
func (s *ChromeScraper) ScrapeShow(ctx context.Context, url string) (*Episode, error) {
	userDataDir, err := os.MkdirTemp("", "hotstar-scraper-profile-*")
	if err != nil {
		return nil, fmt.Errorf("创建user-data-dir失败: %w", err)
	}
	defer os.RemoveAll(userDataDir)

	wd, err := s.newSession(userDataDir)
	if err != nil {
		return nil, err
	}
	defer wd.Quit()

	if err := wd.Get(url); err != nil {
		return nil, fmt.Errorf("加载页面失败: %w", err)
	}

	// 等待剧集卡片出现
	if err := s.waitForEpisodeCard(wd); err != nil {
		return nil, err
	}

	// 滚动到底部触发懒加载
	if _, err := wd.ExecuteScript(scrollScript, nil); err != nil {
		return nil, fmt.Errorf("执行滚动脚本失败: %w", err)
	}
	select {
	case <-time.After(s.opts.ScrollWait):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	// 抓取页面源码并用goquery解析
	html, err := wd.PageSource()
	if err != nil {
		return nil, fmt.Errorf("获取页面源码失败: %w", err)
	}

	episode, err := ParseLatestEpisode(html)
	if err != nil {
		if err == ErrNoEpisodes {
			return nil, fmt.Errorf("未找到剧集: URL=%s", url)
		}
		return nil, err
	}
	episode.ShowName = FormatShowName(url)

	return episode, nil
}

// newSession 创建浏览器会话（内部方法）
func (s *ChromeScraper) newSession(userDataDir string) (selenium.WebDriver, error) {
	caps := selenium.Capabilities{"browserName": "chrome"}

	args := []string{
		"--no-sandbox",
		"--disable-gpu",
		"--log-level=3",
		"--user-data-dir=" + userDataDir,
	}
	if s.opts.Headless {
		args = append(args, "--headless")
	}

	caps.AddChrome(chrome.Capabilities{
		Path:            s.opts.ChromePath,
		Args:            args,
		ExcludeSwitches: []string{"enable-logging"},
	})

	wd, err := selenium.NewRemote(caps, s.addr)
	if err != nil {
		return nil, fmt.Errorf("创建浏览器会话失败: %w", err)
	}
	return wd, nil
}

// waitForEpisodeCard 等待剧集卡片可见（内部方法）
func (s *ChromeScraper) waitForEpisodeCard(wd selenium.WebDriver) error {
	condition := func(wd selenium.WebDriver) (bool, error) {
		elems, err := wd.FindElements(selenium.ByCSSSelector, episodeCardSelector)
		if err != nil || len(elems) == 0 {
			return false, nil
		}
		displayed, err := elems[0].IsDisplayed()
		if err != nil {
			return false, nil
		}
		return displayed, nil
	}

	if err := wd.WaitWithTimeoutAndInterval(condition, s.opts.PageTimeout, 500*time.Millisecond); err != nil {
		return fmt.Errorf("等待剧集卡片超时: %w", err)
	}
	return nil
}
