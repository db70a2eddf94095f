package output

import (
	"testing"
	"unicode/utf8"
)

// TestTruncate 测试单元格内容截断
func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"短于上限不截断", "Episode 100", 20, "Episode 100"},
		{"等于上限不截断", "abcde", 5, "abcde"},
		{"超出上限补省略号", "Moorthy questions Meena about the missing jewels.", 20, "Moorthy questions..."},
		{"上限过小直接返回", "abcdef", 3, "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d)期望%q，实际%q", tt.in, tt.max, tt.want, got)
			}
		})
	}
}

// TestTruncate_MultiByte 多字节字符按rune截断，不产生无效UTF-8
func TestTruncate_MultiByte(t *testing.T) {
	in := "பாண்டியன் ஸ்டோர்ஸ் சீசன் இரண்டு புதிய அத்தியாயம்"
	got := Truncate(in, 10)

	if !utf8.ValidString(got) {
		t.Errorf("截断结果不是有效UTF-8: %q", got)
	}
	if runeCount := len([]rune(got)); runeCount != 10 {
		t.Errorf("期望截断后共10个rune，实际%d个: %q", runeCount, got)
	}
}
