package dao

import (
	"database/sql"
	"time"
)

// JobDAO 抓取任务表的数据访问对象（内部使用）
type JobDAO struct {
	ID           string         `db:"id"`
	Status       string         `db:"status"`
	Total        int            `db:"total"`
	Succeeded    int            `db:"succeeded"`
	Failed       int            `db:"failed"`
	StartedAt    time.Time      `db:"started_at"`
	FinishedAt   sql.NullTime   `db:"finished_at"`
	ErrorMessage sql.NullString `db:"error_msg"`
}
