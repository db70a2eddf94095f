// Package dao 提供持久化层的数据访问对象
package dao

import "time"

// ShowDAO 剧集表的数据访问对象（内部使用）
type ShowDAO struct {
	ID         string    `db:"id"`
	Name       string    `db:"name"`
	URL        string    `db:"url"`
	Enabled    bool      `db:"enabled"`
	CreateTime time.Time `db:"create_time"`
}
