package scraper

import "testing"

// TestFormatShowName 测试从URL提取剧名
func TestFormatShowName(t *testing.T) {
	cases := []struct {
		url      string
		expected string
	}{
		{"https://www.hotstar.com/in/shows/pandian-stores-2/1260000603", "Pandian Stores 2"},
		{"https://www.hotstar.com/in/shows/ayyanar-thunai/1271388570", "Ayyanar Thunai"},
		{"https://www.hotstar.com/in/shows/baakiyalakshmi/1260022970", "Baakiyalakshmi"},
		{"https://www.hotstar.com/in/movies/leo/1260143673", ""},
		{"", ""},
	}

	for _, c := range cases {
		got := FormatShowName(c.url)
		if got != c.expected {
			t.Errorf("FormatShowName(%s)期望%q，实际%q", c.url, c.expected, got)
		}
	}
}

// TestFormatShowName_NoTrailingSlash URL中slug后无斜杠时不匹配
func TestFormatShowName_NoTrailingSlash(t *testing.T) {
	got := FormatShowName("https://www.hotstar.com/in/shows/baakiyalakshmi")
	if got != "" {
		t.Errorf("期望空剧名，实际%q", got)
	}
}

// TestCapitalize 测试单词首字母大写
func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"stores": "Stores",
		"2":      "2",
		"ABC":    "Abc",
		"":       "",
	}
	for in, expected := range cases {
		if got := capitalize(in); got != expected {
			t.Errorf("capitalize(%q)期望%q，实际%q", in, expected, got)
		}
	}
}
