// Package storage 提供数据库工厂（内部使用）
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	pkgstorage "github.com/LENAX/hotstar-scraper/pkg/storage"
	"github.com/LENAX/hotstar-scraper/pkg/storage/mysql"
	"github.com/LENAX/hotstar-scraper/pkg/storage/postgres"
	pkgsqlite "github.com/LENAX/hotstar-scraper/pkg/storage/sqlite"
)

// NewRepository 按数据库类型创建Repository（内部工厂方法）
// dbType: sqlite/mysql/postgres
func NewRepository(dbType, dsn string, maxOpenConns, maxIdleConns int) (pkgstorage.Repository, error) {
	dialect, err := dialectFor(dbType)
	if err != nil {
		return nil, err
	}

	// SQLite需要确保数据目录存在
	if dialect.Name() == "sqlite" && dsn != ":memory:" {
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("创建数据目录失败: %w", err)
			}
		}
	}

	db, err := sqlx.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns >= 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}

	for _, stmt := range dialect.ConfigureDB() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("配置数据库失败: %w", err)
		}
	}

	store, err := pkgstorage.NewStore(db, dialect)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// dialectFor 根据数据库类型返回方言（内部方法）
func dialectFor(dbType string) (pkgstorage.Dialect, error) {
	switch dbType {
	case "sqlite":
		return pkgsqlite.NewDialect(), nil
	case "mysql":
		return mysql.NewDialect(), nil
	case "postgres", "postgresql":
		return postgres.NewDialect(), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}
}
