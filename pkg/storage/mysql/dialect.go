// Package mysql 提供MySQL方言实现
package mysql

import (
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

// Dialect MySQL方言实现（对外导出）
type Dialect struct{}

// NewDialect 创建MySQL方言实例
func NewDialect() *Dialect {
	return &Dialect{}
}

// Name 返回方言名称
func (d *Dialect) Name() string {
	return "mysql"
}

// DriverName 返回驱动名
func (d *Dialect) DriverName() string {
	return "mysql"
}

// UpsertSQL 返回MySQL的UPSERT语句（ON DUPLICATE KEY UPDATE）
func (d *Dialect) UpsertSQL(tableName string, columns []string, conflictColumn string) string {
	namedPlaceholders := make([]string, len(columns))
	updates := make([]string, 0, len(columns))
	for i, col := range columns {
		namedPlaceholders[i] = ":" + col
		if col != conflictColumn {
			updates = append(updates, fmt.Sprintf("%s=VALUES(%s)", col, col))
		}
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON DUPLICATE KEY UPDATE %s",
		tableName,
		strings.Join(columns, ", "),
		strings.Join(namedPlaceholders, ", "),
		strings.Join(updates, ", "),
	)
}

// ConfigureDB MySQL无需额外配置
func (d *Dialect) ConfigureDB() []string {
	return nil
}

// TimestampType 返回时间戳类型
func (d *Dialect) TimestampType() string {
	return "DATETIME"
}

// BooleanType 返回布尔类型
func (d *Dialect) BooleanType() string {
	return "TINYINT(1)"
}
