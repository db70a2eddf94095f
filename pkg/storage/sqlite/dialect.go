// Package sqlite 提供SQLite方言实现
package sqlite

import (
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Dialect SQLite方言实现（对外导出）
type Dialect struct{}

// NewDialect 创建SQLite方言实例
func NewDialect() *Dialect {
	return &Dialect{}
}

// Name 返回方言名称
func (d *Dialect) Name() string {
	return "sqlite"
}

// DriverName 返回驱动名
func (d *Dialect) DriverName() string {
	return "sqlite3"
}

// UpsertSQL 返回SQLite的UPSERT语句（INSERT OR REPLACE）
func (d *Dialect) UpsertSQL(tableName string, columns []string, conflictColumn string) string {
	namedPlaceholders := make([]string, len(columns))
	for i, col := range columns {
		namedPlaceholders[i] = ":" + col
	}

	return fmt.Sprintf(
		"INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		tableName,
		strings.Join(columns, ", "),
		strings.Join(namedPlaceholders, ", "),
	)
}

// ConfigureDB 返回SQLite配置SQL
func (d *Dialect) ConfigureDB() []string {
	return []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=30000;",
		"PRAGMA synchronous=NORMAL;",
	}
}

// TimestampType 返回时间戳类型
func (d *Dialect) TimestampType() string {
	return "DATETIME"
}

// BooleanType 返回布尔类型
func (d *Dialect) BooleanType() string {
	return "INTEGER"
}
