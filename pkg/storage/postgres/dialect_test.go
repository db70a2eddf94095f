package postgres

import "testing"

// TestDialect_UpsertSQL 测试PostgreSQL的UPSERT语句生成
func TestDialect_UpsertSQL(t *testing.T) {
	d := NewDialect()
	sql := d.UpsertSQL("shows", []string{"id", "name", "url"}, "id")

	expected := "INSERT INTO shows (id, name, url) VALUES (:id, :name, :url) " +
		"ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, url=EXCLUDED.url"
	if sql != expected {
		t.Errorf("期望%q，实际%q", expected, sql)
	}
}

// TestDialect_Types 测试类型映射
func TestDialect_Types(t *testing.T) {
	d := NewDialect()
	if d.Name() != "postgres" || d.DriverName() != "postgres" {
		t.Errorf("方言名称错误: %s/%s", d.Name(), d.DriverName())
	}
	if d.TimestampType() != "TIMESTAMP" {
		t.Errorf("期望TIMESTAMP，实际%s", d.TimestampType())
	}
}
