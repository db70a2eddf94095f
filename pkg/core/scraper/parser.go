package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// 页面选择器常量（Hotstar剧集页DOM结构）
const (
	episodeCardSelector = `[data-testid="episode-card"]`
	titleSelector       = "h3"
	descSelector        = `p[class*="ON_IMAGE_ALT2"]`
	dateBlockSelector   = "div.LABEL_CAPTION2_MEDIUM"
	dateSpanSelector    = "span.ON_IMAGE.LABEL_CAPTION1_SEMIBOLD"
)

// ErrNoEpisodes 页面中不存在剧集卡片
var ErrNoEpisodes = fmt.Errorf("页面中未找到剧集卡片")

// ParseLatestEpisode 从页面HTML中解析第一张（最新一集）剧集卡片（对外导出）
// 使用goquery按CSS选择器提取标题、简介与播出日期
func ParseLatestEpisode(html string) (*Episode, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("解析HTML失败: %w", err)
	}

	cards := doc.Find(episodeCardSelector)
	if cards.Length() == 0 {
		return nil, ErrNoEpisodes
	}

	first := cards.First()

	title := strings.TrimSpace(first.Find(titleSelector).First().Text())
	description := strings.TrimSpace(first.Find(descSelector).First().Text())

	if title == "" {
		return nil, fmt.Errorf("剧集卡片缺少标题")
	}

	// 日期块首span是时长，第二个span才是播出日期，不足两个视为结构异常
	dateSpans := first.Find(dateBlockSelector).First().Find(dateSpanSelector)
	if dateSpans.Length() < 2 {
		return nil, fmt.Errorf("剧集卡片日期块span数量不足: %d", dateSpans.Length())
	}
	airDate := strings.TrimSpace(dateSpans.Eq(1).Text())

	return &Episode{
		Title:       title,
		Description: description,
		AirDate:     airDate,
	}, nil
}
