// Package scraperclient 提供Hotstar Scraper HTTP API客户端
package scraperclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/LENAX/hotstar-scraper/pkg/api/dto"
	"github.com/LENAX/hotstar-scraper/pkg/core/scraper"
)

// ScraperClient HTTP API客户端
type ScraperClient struct {
	baseURL    string
	httpClient *http.Client
}

// New 创建ScraperClient客户端
// 同步抓取为长操作，超时需覆盖整批抓取耗时
func New(baseURL string) *ScraperClient {
	return &ScraperClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

// ========== Scrape API ==========

// ScrapeAll 同步抓取所有启用剧集
// 响应为逐URL的结果数组
func (s *ScraperClient) ScrapeAll() ([]scraper.ScrapeResult, error) {
	resp, err := s.httpClient.Get(s.baseURL + "/scrape")
	if err != nil {
		return nil, fmt.Errorf("HTTP请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("抓取失败: HTTP %d, body: %s", resp.StatusCode, string(body))
	}

	var results []scraper.ScrapeResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("解析响应失败: %w, body: %s", err, string(body))
	}
	return results, nil
}

// SubmitJob 提交异步抓取任务（URLs为空时抓取所有启用剧集）
func (s *ScraperClient) SubmitJob(urls []string) (*dto.SubmitJobResponse, error) {
	req := dto.SubmitScrapeRequest{URLs: urls}
	var resp dto.APIResponse[dto.SubmitJobResponse]
	if err := s.post("/api/v1/jobs", req, &resp); err != nil {
		return nil, err
	}
	if resp.Code != 0 {
		return nil, fmt.Errorf("%s", resp.Message)
	}
	return &resp.Data, nil
}

// ========== Show API ==========

// ListShows 列出已注册剧集
func (s *ScraperClient) ListShows() (*dto.ListResponse[dto.ShowSummary], error) {
	var resp dto.APIResponse[dto.ListResponse[dto.ShowSummary]]
	if err := s.get("/api/v1/shows", &resp); err != nil {
		return nil, err
	}
	if resp.Code != 0 {
		return nil, fmt.Errorf("%s", resp.Message)
	}
	return &resp.Data, nil
}

// RegisterShow 注册剧集
func (s *ScraperClient) RegisterShow(showURL string) (*dto.ShowSummary, error) {
	req := dto.RegisterShowRequest{URL: showURL}
	var resp dto.APIResponse[dto.ShowSummary]
	if err := s.post("/api/v1/shows", req, &resp); err != nil {
		return nil, err
	}
	if resp.Code != 0 {
		return nil, fmt.Errorf("%s", resp.Message)
	}
	return &resp.Data, nil
}

// DeleteShow 删除剧集
func (s *ScraperClient) DeleteShow(id string) error {
	var resp dto.APIResponse[any]
	if err := s.delete("/api/v1/shows/"+id, &resp); err != nil {
		return err
	}
	if resp.Code != 0 {
		return fmt.Errorf("%s", resp.Message)
	}
	return nil
}

// ScrapeShow 抓取单个剧集
func (s *ScraperClient) ScrapeShow(id string) (*dto.SubmitJobResponse, error) {
	var resp dto.APIResponse[dto.SubmitJobResponse]
	if err := s.post("/api/v1/shows/"+id+"/scrape", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Code != 0 {
		return nil, fmt.Errorf("%s", resp.Message)
	}
	return &resp.Data, nil
}

// ========== Job API ==========

// ListJobs 列出任务记录
func (s *ScraperClient) ListJobs(limit int) (*dto.ListResponse[dto.JobSummary], error) {
	path := "/api/v1/jobs"
	if limit > 0 {
		params := url.Values{}
		params.Set("limit", fmt.Sprintf("%d", limit))
		path += "?" + params.Encode()
	}

	var resp dto.APIResponse[dto.ListResponse[dto.JobSummary]]
	if err := s.get(path, &resp); err != nil {
		return nil, err
	}
	if resp.Code != 0 {
		return nil, fmt.Errorf("%s", resp.Message)
	}
	return &resp.Data, nil
}

// GetJob 获取任务详情
func (s *ScraperClient) GetJob(id string) (*dto.JobSummary, error) {
	var resp dto.APIResponse[dto.JobSummary]
	if err := s.get("/api/v1/jobs/"+id, &resp); err != nil {
		return nil, err
	}
	if resp.Code != 0 {
		return nil, fmt.Errorf("%s", resp.Message)
	}
	return &resp.Data, nil
}

// GetJobResults 获取任务的逐URL结果
func (s *ScraperClient) GetJobResults(id string) (*dto.ListResponse[scraper.ScrapeResult], error) {
	var resp dto.APIResponse[dto.ListResponse[scraper.ScrapeResult]]
	if err := s.get("/api/v1/jobs/"+id+"/results", &resp); err != nil {
		return nil, err
	}
	if resp.Code != 0 {
		return nil, fmt.Errorf("%s", resp.Message)
	}
	return &resp.Data, nil
}

// ========== Episode API ==========

// ListEpisodes 查询历史抓取记录
func (s *ScraperClient) ListEpisodes(name string, limit int) (*dto.ListResponse[dto.EpisodeSummary], error) {
	params := url.Values{}
	if name != "" {
		params.Set("name", name)
	}
	if limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}

	path := "/api/v1/episodes"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp dto.APIResponse[dto.ListResponse[dto.EpisodeSummary]]
	if err := s.get(path, &resp); err != nil {
		return nil, err
	}
	if resp.Code != 0 {
		return nil, fmt.Errorf("%s", resp.Message)
	}
	return &resp.Data, nil
}

// ========== Health API ==========

// Health 健康检查
func (s *ScraperClient) Health() (*dto.HealthResponse, error) {
	var resp dto.APIResponse[dto.HealthResponse]
	if err := s.get("/health", &resp); err != nil {
		return nil, err
	}
	if resp.Code != 0 {
		return nil, fmt.Errorf("%s", resp.Message)
	}
	return &resp.Data, nil
}

// ========== HTTP Methods ==========

func (s *ScraperClient) get(path string, result interface{}) error {
	resp, err := s.httpClient.Get(s.baseURL + path)
	if err != nil {
		return fmt.Errorf("HTTP请求失败: %w", err)
	}
	defer resp.Body.Close()

	return s.parseResponse(resp, result)
}

func (s *ScraperClient) post(path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("序列化请求体失败: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	resp, err := s.httpClient.Post(s.baseURL+path, "application/json", reqBody)
	if err != nil {
		return fmt.Errorf("HTTP请求失败: %w", err)
	}
	defer resp.Body.Close()

	return s.parseResponse(resp, result)
}

func (s *ScraperClient) delete(path string, result interface{}) error {
	req, err := http.NewRequest(http.MethodDelete, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP请求失败: %w", err)
	}
	defer resp.Body.Close()

	return s.parseResponse(resp, result)
}

func (s *ScraperClient) parseResponse(resp *http.Response, result interface{}) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("读取响应体失败: %w", err)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("解析响应失败: %w, body: %s", err, string(body))
	}

	return nil
}
