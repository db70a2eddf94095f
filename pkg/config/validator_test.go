package config

import "testing"

// TestValidate_Default 默认配置应通过校验
func TestValidate_Default(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Errorf("默认配置校验失败: %v", err)
	}
}

// TestValidate_Nil 空配置报错
func TestValidate_Nil(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Error("期望空配置报错")
	}
}

// TestValidate_BadPort 非法端口报错
func TestValidate_BadPort(t *testing.T) {
	cfg := Default()
	cfg.HTTP.Port = 70000
	if err := Validate(cfg); err == nil {
		t.Error("期望非法端口报错")
	}
}

// TestValidate_BadDBType 非法数据库类型报错
func TestValidate_BadDBType(t *testing.T) {
	cfg := Default()
	cfg.Database.Type = "mongodb"
	if err := Validate(cfg); err == nil {
		t.Error("期望非法数据库类型报错")
	}
}

// TestValidate_EmptyDSN 空DSN报错
func TestValidate_EmptyDSN(t *testing.T) {
	cfg := Default()
	cfg.Database.DSN = ""
	if err := Validate(cfg); err == nil {
		t.Error("期望空DSN报错")
	}
}

// TestValidate_BadCron 启用调度但cron表达式无效时报错
func TestValidate_BadCron(t *testing.T) {
	cfg := Default()
	cfg.Schedule.Enabled = true
	cfg.Schedule.CronExpr = "not a cron"
	if err := Validate(cfg); err == nil {
		t.Error("期望无效cron表达式报错")
	}
}

// TestValidate_DisabledCronIgnored 未启用调度时不校验表达式
func TestValidate_DisabledCronIgnored(t *testing.T) {
	cfg := Default()
	cfg.Schedule.Enabled = false
	cfg.Schedule.CronExpr = "not a cron"
	if err := Validate(cfg); err != nil {
		t.Errorf("未启用调度时不应校验表达式: %v", err)
	}
}
