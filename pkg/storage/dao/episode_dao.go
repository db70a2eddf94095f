package dao

import "time"

// EpisodeDAO 剧集抓取记录表的数据访问对象（内部使用）
type EpisodeDAO struct {
	ID          string    `db:"id"`
	JobID       string    `db:"job_id"`
	ShowName    string    `db:"show_name"`
	ShowURL     string    `db:"show_url"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	AirDate     string    `db:"air_date"`
	ScrapedAt   time.Time `db:"scraped_at"`
}
