package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/LENAX/hotstar-scraper/pkg/storage/dao"
)

// Store 基于sqlx的Repository实现（对外导出）
// 通过Dialect适配sqlite/mysql/postgres
type Store struct {
	db      *sqlx.DB
	dialect Dialect
}

// NewStore 创建Store并初始化表结构（对外导出的工厂方法）
func NewStore(db *sqlx.DB, dialect Dialect) (*Store, error) {
	s := &Store{db: db, dialect: dialect}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("初始化表结构失败: %w", err)
	}
	return s, nil
}

// initSchema 初始化数据库表结构（内部方法）
func (s *Store) initSchema() error {
	ts := s.dialect.TimestampType()
	boolean := s.dialect.BooleanType()

	schemas := []string{
		fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS shows (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		url VARCHAR(512) NOT NULL,
		enabled %s NOT NULL,
		create_time %s NOT NULL
	)`, boolean, ts),
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_shows_url ON shows(url)`,
		fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS episodes (
		id VARCHAR(36) PRIMARY KEY,
		job_id VARCHAR(36) NOT NULL,
		show_name VARCHAR(255) NOT NULL,
		show_url VARCHAR(512) NOT NULL,
		title VARCHAR(255) NOT NULL,
		description TEXT,
		air_date VARCHAR(64),
		scraped_at %s NOT NULL
	)`, ts),
		`CREATE INDEX IF NOT EXISTS idx_episodes_show_name ON episodes(show_name)`,
		`CREATE INDEX IF NOT EXISTS idx_episodes_job_id ON episodes(job_id)`,
		fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS scrape_jobs (
		id VARCHAR(36) PRIMARY KEY,
		status VARCHAR(32) NOT NULL,
		total INTEGER NOT NULL,
		succeeded INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		started_at %s NOT NULL,
		finished_at %s,
		error_msg TEXT
	)`, ts, ts),
		`CREATE INDEX IF NOT EXISTS idx_scrape_jobs_status ON scrape_jobs(status)`,
	}

	for _, schema := range schemas {
		if _, err := s.db.Exec(schema); err != nil {
			return err
		}
	}
	return nil
}

// ========== ShowRepository ==========

var showColumns = []string{"id", "name", "url", "enabled", "create_time"}

// SaveShow 保存剧集（存在时覆盖）
func (s *Store) SaveShow(ctx context.Context, show *Show) error {
	record := &dao.ShowDAO{
		ID:         show.ID,
		Name:       show.Name,
		URL:        show.URL,
		Enabled:    show.Enabled,
		CreateTime: show.CreateTime,
	}

	query := s.dialect.UpsertSQL("shows", showColumns, "id")
	if _, err := s.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("保存剧集失败: %w", err)
	}
	return nil
}

// GetShow 根据ID查询剧集，不存在时返回nil
func (s *Store) GetShow(ctx context.Context, id string) (*Show, error) {
	return s.getShowBy(ctx, "id", id)
}

// GetShowByURL 根据URL查询剧集，不存在时返回nil
func (s *Store) GetShowByURL(ctx context.Context, url string) (*Show, error) {
	return s.getShowBy(ctx, "url", url)
}

// getShowBy 按指定列查询剧集（内部方法）
func (s *Store) getShowBy(ctx context.Context, column, value string) (*Show, error) {
	var record dao.ShowDAO
	query := s.db.Rebind(fmt.Sprintf(
		"SELECT id, name, url, enabled, create_time FROM shows WHERE %s = ?", column))

	if err := s.db.GetContext(ctx, &record, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询剧集失败: %w", err)
	}
	return showFromDAO(&record), nil
}

// ListShows 列出所有剧集（按注册时间升序）
func (s *Store) ListShows(ctx context.Context) ([]*Show, error) {
	var records []dao.ShowDAO
	query := "SELECT id, name, url, enabled, create_time FROM shows ORDER BY create_time ASC"

	if err := s.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("查询剧集列表失败: %w", err)
	}

	shows := make([]*Show, 0, len(records))
	for i := range records {
		shows = append(shows, showFromDAO(&records[i]))
	}
	return shows, nil
}

// DeleteShow 删除剧集
func (s *Store) DeleteShow(ctx context.Context, id string) error {
	query := s.db.Rebind("DELETE FROM shows WHERE id = ?")
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("删除剧集失败: %w", err)
	}
	return nil
}

// ========== EpisodeRepository ==========

var episodeColumns = []string{"id", "job_id", "show_name", "show_url", "title", "description", "air_date", "scraped_at"}

// SaveEpisode 保存抓取记录
func (s *Store) SaveEpisode(ctx context.Context, record *EpisodeRecord) error {
	row := &dao.EpisodeDAO{
		ID:          record.ID,
		JobID:       record.JobID,
		ShowName:    record.ShowName,
		ShowURL:     record.ShowURL,
		Title:       record.Title,
		Description: record.Description,
		AirDate:     record.AirDate,
		ScrapedAt:   record.ScrapedAt,
	}

	query := s.dialect.UpsertSQL("episodes", episodeColumns, "id")
	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("保存抓取记录失败: %w", err)
	}
	return nil
}

// ListEpisodes 查询抓取记录（按抓取时间倒序）
// showName为空时返回全部剧集的记录
func (s *Store) ListEpisodes(ctx context.Context, showName string, limit int) ([]*EpisodeRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var records []dao.EpisodeDAO
	var err error
	if showName == "" {
		query := s.db.Rebind(
			"SELECT id, job_id, show_name, show_url, title, description, air_date, scraped_at " +
				"FROM episodes ORDER BY scraped_at DESC LIMIT ?")
		err = s.db.SelectContext(ctx, &records, query, limit)
	} else {
		query := s.db.Rebind(
			"SELECT id, job_id, show_name, show_url, title, description, air_date, scraped_at " +
				"FROM episodes WHERE show_name = ? ORDER BY scraped_at DESC LIMIT ?")
		err = s.db.SelectContext(ctx, &records, query, showName, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("查询抓取记录失败: %w", err)
	}

	episodes := make([]*EpisodeRecord, 0, len(records))
	for i := range records {
		episodes = append(episodes, episodeFromDAO(&records[i]))
	}
	return episodes, nil
}

// ========== JobRepository ==========

var jobColumns = []string{"id", "status", "total", "succeeded", "failed", "started_at", "finished_at", "error_msg"}

// SaveJob 保存任务记录（状态更新时覆盖）
func (s *Store) SaveJob(ctx context.Context, job *ScrapeJobRecord) error {
	row := &dao.JobDAO{
		ID:        job.ID,
		Status:    job.Status,
		Total:     job.Total,
		Succeeded: job.Succeeded,
		Failed:    job.Failed,
		StartedAt: job.StartedAt,
	}
	if job.FinishedAt != nil {
		row.FinishedAt.Valid = true
		row.FinishedAt.Time = *job.FinishedAt
	}
	if job.ErrorMessage != "" {
		row.ErrorMessage.Valid = true
		row.ErrorMessage.String = job.ErrorMessage
	}

	query := s.dialect.UpsertSQL("scrape_jobs", jobColumns, "id")
	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("保存任务记录失败: %w", err)
	}
	return nil
}

// GetJob 根据ID查询任务记录，不存在时返回nil
func (s *Store) GetJob(ctx context.Context, id string) (*ScrapeJobRecord, error) {
	var record dao.JobDAO
	query := s.db.Rebind(
		"SELECT id, status, total, succeeded, failed, started_at, finished_at, error_msg " +
			"FROM scrape_jobs WHERE id = ?")

	if err := s.db.GetContext(ctx, &record, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询任务记录失败: %w", err)
	}
	return jobFromDAO(&record), nil
}

// ListJobs 查询任务记录（按开始时间倒序）
func (s *Store) ListJobs(ctx context.Context, limit int) ([]*ScrapeJobRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var records []dao.JobDAO
	query := s.db.Rebind(
		"SELECT id, status, total, succeeded, failed, started_at, finished_at, error_msg " +
			"FROM scrape_jobs ORDER BY started_at DESC LIMIT ?")

	if err := s.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("查询任务列表失败: %w", err)
	}

	jobs := make([]*ScrapeJobRecord, 0, len(records))
	for i := range records {
		jobs = append(jobs, jobFromDAO(&records[i]))
	}
	return jobs, nil
}

// Close 关闭数据库连接
func (s *Store) Close() error {
	return s.db.Close()
}

// ========== DAO转换（内部方法） ==========

func showFromDAO(record *dao.ShowDAO) *Show {
	return &Show{
		ID:         record.ID,
		Name:       record.Name,
		URL:        record.URL,
		Enabled:    record.Enabled,
		CreateTime: record.CreateTime,
	}
}

func episodeFromDAO(record *dao.EpisodeDAO) *EpisodeRecord {
	return &EpisodeRecord{
		ID:          record.ID,
		JobID:       record.JobID,
		ShowName:    record.ShowName,
		ShowURL:     record.ShowURL,
		Title:       record.Title,
		Description: record.Description,
		AirDate:     record.AirDate,
		ScrapedAt:   record.ScrapedAt,
	}
}

func jobFromDAO(record *dao.JobDAO) *ScrapeJobRecord {
	job := &ScrapeJobRecord{
		ID:        record.ID,
		Status:    record.Status,
		Total:     record.Total,
		Succeeded: record.Succeeded,
		Failed:    record.Failed,
		StartedAt: record.StartedAt,
	}
	if record.FinishedAt.Valid {
		t := record.FinishedAt.Time
		job.FinishedAt = &t
	}
	if record.ErrorMessage.Valid {
		job.ErrorMessage = record.ErrorMessage.String
	}
	return job
}

// 确保Store实现Repository接口
var _ Repository = (*Store)(nil)

// Now 返回当前时间（秒截断，方便跨数据库往返比较）
func Now() time.Time {
	return time.Now().Truncate(time.Second)
}
