package browser

import "testing"

// TestParseChromeVersion 测试从版本命令输出解析版本号
func TestParseChromeVersion(t *testing.T) {
	cases := []struct {
		output   string
		expected string
	}{
		{"Google Chrome 126.0.6478.126 \n", "126.0.6478.126"},
		{"Google Chrome 120.0.6099.109", "120.0.6099.109"},
		{"Chromium 119.0.6045.105 built on Debian", "119.0.6045.105"},
		{"command not found", ""},
		{"", ""},
	}

	for _, c := range cases {
		if got := ParseChromeVersion(c.output); got != c.expected {
			t.Errorf("ParseChromeVersion(%q)期望%q，实际%q", c.output, c.expected, got)
		}
	}
}

// TestMajorVersion 测试主版本提取
func TestMajorVersion(t *testing.T) {
	major, err := MajorVersion("126.0.6478.126")
	if err != nil {
		t.Fatalf("提取主版本失败: %v", err)
	}
	if major != 126 {
		t.Errorf("期望主版本126，实际%d", major)
	}

	if _, err := MajorVersion("not-a-version"); err == nil {
		t.Error("期望无效版本号报错，实际无错误")
	}
}

// TestVersionsMatch 测试主版本匹配判断
func TestVersionsMatch(t *testing.T) {
	if !VersionsMatch("126.0.6478.126", "126.0.6478.55") {
		t.Error("期望主版本一致")
	}
	if VersionsMatch("126.0.6478.126", "125.0.6422.141") {
		t.Error("期望主版本不一致")
	}
	if VersionsMatch("bad", "126.0.6478.55") {
		t.Error("无效版本号不应匹配")
	}
}
