package scraper

// Episode 单集元数据（最新一集的剧集卡片内容）
type Episode struct {
	Title       string `json:"title"`       // 集标题
	Description string `json:"description"` // 集简介
	AirDate     string `json:"date"`        // 播出日期（页面原始文本）
	ShowName    string `json:"name"`        // 剧名（从URL slug推导）
}

// ScrapeResult 单个剧集URL的抓取结果
// 成功时包含Episode字段，失败时包含Error与剧名（与逐URL容错语义一致）
type ScrapeResult struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	AirDate     string `json:"date,omitempty"`
	ShowName    string `json:"name"`
	Error       string `json:"error,omitempty"`
	URL         string `json:"url,omitempty"`
}

// NewSuccessResult 创建成功结果
func NewSuccessResult(url string, ep *Episode) ScrapeResult {
	return ScrapeResult{
		Title:       ep.Title,
		Description: ep.Description,
		AirDate:     ep.AirDate,
		ShowName:    ep.ShowName,
		URL:         url,
	}
}

// NewFailureResult 创建失败结果（保留剧名方便定位）
func NewFailureResult(url string, err error) ScrapeResult {
	return ScrapeResult{
		ShowName: FormatShowName(url),
		Error:    err.Error(),
		URL:      url,
	}
}

// OK 结果是否成功
func (r ScrapeResult) OK() bool {
	return r.Error == ""
}
