package scraper

import (
	"regexp"
	"strings"
)

// showSlugPattern 从URL中提取剧集slug的正则（如 shows/pandian-stores-2/）
var showSlugPattern = regexp.MustCompile(`shows/([^/]+)/`)

// FormatShowName 从剧集URL中提取并格式化剧名（对外导出）
// 如 https://www.hotstar.com/in/shows/pandian-stores-2/1260000603 -> "Pandian Stores 2"
// URL中不包含shows段时返回空字符串
func FormatShowName(url string) string {
	match := showSlugPattern.FindStringSubmatch(url)
	if match == nil {
		return ""
	}

	words := strings.Split(match[1], "-")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// capitalize 首字母大写，其余小写（内部方法）
func capitalize(word string) string {
	if word == "" {
		return ""
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}
