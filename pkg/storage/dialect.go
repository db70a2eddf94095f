package storage

// Dialect SQL方言接口（对外导出）
// 封装不同数据库的SQL语法差异
type Dialect interface {
	// Name 返回方言名称（如 "sqlite", "mysql", "postgres"）
	Name() string

	// DriverName 返回database/sql驱动名
	DriverName() string

	// UpsertSQL 返回INSERT或UPDATE的SQL语句（命名参数形式）
	// tableName: 表名
	// columns: 列名列表
	// conflictColumn: 冲突判断列（主键）
	UpsertSQL(tableName string, columns []string, conflictColumn string) string

	// ConfigureDB 返回建连后需要执行的SQL语句（如SQLite的PRAGMA）
	ConfigureDB() []string

	// TimestampType 返回时间戳类型
	// SQLite/MySQL: DATETIME
	// PostgreSQL: TIMESTAMP
	TimestampType() string

	// BooleanType 返回布尔类型
	// SQLite: INTEGER
	// MySQL: TINYINT(1)
	// PostgreSQL: BOOLEAN
	BooleanType() string
}
