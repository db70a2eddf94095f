package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LENAX/hotstar-scraper/pkg/api"
	"github.com/LENAX/hotstar-scraper/pkg/api/dto"
	"github.com/LENAX/hotstar-scraper/pkg/core/engine"
	"github.com/LENAX/hotstar-scraper/pkg/core/events"
	"github.com/LENAX/hotstar-scraper/pkg/core/scraper"
	"github.com/LENAX/hotstar-scraper/pkg/storage"
	"github.com/LENAX/hotstar-scraper/pkg/storage/sqlite"
)

const (
	testShowURL1 = "https://www.hotstar.com/in/shows/pandian-stores-2/1260000603/watch"
	testShowURL2 = "https://www.hotstar.com/in/shows/baakiyalakshmi/1260000798/watch"
)

// fakeScraper 可编程的抓取器桩实现（测试辅助）
type fakeScraper struct {
	mu       sync.Mutex
	episodes map[string]*scraper.Episode
	errs     map[string]error
}

func newFakeScraper() *fakeScraper {
	return &fakeScraper{
		episodes: make(map[string]*scraper.Episode),
		errs:     make(map[string]error),
	}
}

func (f *fakeScraper) ScrapeShow(ctx context.Context, url string) (*scraper.Episode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	if ep, ok := f.episodes[url]; ok {
		return ep, nil
	}
	return nil, fmt.Errorf("未配置的URL: %s", url)
}

// newTestRouter 创建测试路由与底层引擎（测试辅助）
func newTestRouter(t *testing.T, fake *fakeScraper, defaultURLs []string) (*gin.Engine, *engine.Engine) {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := storage.NewStore(db, sqlite.NewDialect())
	require.NoError(t, err)

	bus, err := events.NewEventBus(false)
	require.NoError(t, err)

	eng, err := engine.NewEngine(fake, bus, store, 2)
	require.NoError(t, err)
	require.NoError(t, eng.Start(context.Background()))
	t.Cleanup(func() { eng.Stop(context.Background()) })

	return api.SetupRouter(eng, "test", defaultURLs), eng
}

// doRequest 执行HTTP请求并返回响应（测试辅助）
func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	router, _ := newTestRouter(t, newFakeScraper(), nil)

	w := doRequest(router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.APIResponse[dto.HealthResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, "healthy", resp.Data.Status)
	assert.Equal(t, "test", resp.Data.Version)
}

func TestRouter_Metrics(t *testing.T) {
	router, _ := newTestRouter(t, newFakeScraper(), nil)

	// 先产生一次请求以便计数
	doRequest(router, http.MethodGet, "/health", nil)

	w := doRequest(router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

// TestRouter_ScrapeCompat 测试/scrape兼容接口返回结果数组
func TestRouter_ScrapeCompat(t *testing.T) {
	fake := newFakeScraper()
	fake.episodes[testShowURL1] = &scraper.Episode{
		Title:       "Episode 100",
		Description: "Sathya makes a decision.",
		AirDate:     "15 Aug 2026",
		ShowName:    "Pandian Stores 2",
	}
	fake.errs[testShowURL2] = fmt.Errorf("页面加载超时")

	router, _ := newTestRouter(t, fake, []string{testShowURL1, testShowURL2})

	w := doRequest(router, http.MethodGet, "/scrape", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results), "响应应为裸JSON数组")
	require.Len(t, results, 2)

	assert.Equal(t, "Episode 100", results[0]["title"])
	assert.Equal(t, "Pandian Stores 2", results[0]["name"])
	assert.Contains(t, results[1]["error"], "页面加载超时", "失败项应包含error字段")
	assert.Equal(t, "Baakiyalakshmi", results[1]["name"], "失败项应保留剧名")
}

func TestRouter_ShowCRUD(t *testing.T) {
	router, _ := newTestRouter(t, newFakeScraper(), nil)

	// 注册
	w := doRequest(router, http.MethodPost, "/api/v1/shows", dto.RegisterShowRequest{URL: testShowURL1})
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.APIResponse[dto.ShowSummary]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Pandian Stores 2", created.Data.Name)
	showID := created.Data.ID

	// 非法URL
	w = doRequest(router, http.MethodPost, "/api/v1/shows", dto.RegisterShowRequest{URL: "not-a-url"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 列表
	w = doRequest(router, http.MethodGet, "/api/v1/shows", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list dto.APIResponse[dto.ListResponse[dto.ShowSummary]]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Data.Total)

	// 详情
	w = doRequest(router, http.MethodGet, "/api/v1/shows/"+showID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 删除
	w = doRequest(router, http.MethodDelete, "/api/v1/shows/"+showID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/shows/"+showID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "删除后应返回404")
}

// TestRouter_SubmitJob 测试任务提交与查询
func TestRouter_SubmitJob(t *testing.T) {
	fake := newFakeScraper()
	fake.episodes[testShowURL1] = &scraper.Episode{Title: "Episode 100", ShowName: "Pandian Stores 2"}

	router, _ := newTestRouter(t, fake, nil)

	// 注册剧集后提交空任务（抓取所有启用剧集）
	w := doRequest(router, http.MethodPost, "/api/v1/shows", dto.RegisterShowRequest{URL: testShowURL1})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/jobs", nil)
	require.Equal(t, http.StatusAccepted, w.Code)

	var submitted dto.APIResponse[dto.SubmitJobResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &submitted))
	require.NotEmpty(t, submitted.Data.JobID)
	assert.Equal(t, 1, submitted.Data.Total)

	// 轮询任务完成
	require.Eventually(t, func() bool {
		w := doRequest(router, http.MethodGet, "/api/v1/jobs/"+submitted.Data.JobID, nil)
		if w.Code != http.StatusOK {
			return false
		}
		var resp dto.APIResponse[dto.JobSummary]
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			return false
		}
		return resp.Data.Status == storage.JobStatusSuccess
	}, 3*time.Second, 20*time.Millisecond, "任务应流转到Success状态")

	// 逐URL结果
	w = doRequest(router, http.MethodGet, "/api/v1/jobs/"+submitted.Data.JobID+"/results", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ScrapeCompat_NoShows(t *testing.T) {
	router, _ := newTestRouter(t, newFakeScraper(), nil)

	w := doRequest(router, http.MethodGet, "/scrape", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String(), "无剧集时应返回空数组")
}

func TestRouter_SubmitJob_NoShows(t *testing.T) {
	router, _ := newTestRouter(t, newFakeScraper(), nil)

	w := doRequest(router, http.MethodPost, "/api/v1/jobs", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "无剧集且无兜底URL时应返回400")
}

// TestRouter_Episodes 测试抓取记录查询
func TestRouter_Episodes(t *testing.T) {
	fake := newFakeScraper()
	fake.episodes[testShowURL1] = &scraper.Episode{
		Title:    "Episode 100",
		AirDate:  "15 Aug 2026",
		ShowName: "Pandian Stores 2",
	}

	router, eng := newTestRouter(t, fake, []string{testShowURL1})

	doRequest(router, http.MethodGet, "/scrape", nil)

	// 持久化经事件总线异步完成
	require.Eventually(t, func() bool {
		episodes, err := eng.ListEpisodes(context.Background(), "", 10)
		return err == nil && len(episodes) == 1
	}, 3*time.Second, 20*time.Millisecond)

	w := doRequest(router, http.MethodGet, "/api/v1/episodes?name=Pandian+Stores+2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.APIResponse[dto.ListResponse[dto.EpisodeSummary]]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Data.Total)
	assert.Equal(t, "Episode 100", resp.Data.Items[0].Title)
}
