// Package browser 提供浏览器环境准备能力
// 包括检测已安装的Chrome版本、从Chrome-for-Testing版本清单解析并安装
// 匹配的chromedriver，以及管理Xvfb虚拟显示。
package browser

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// DefaultChromeBinary 默认的Chrome二进制名
const DefaultChromeBinary = "google-chrome"

// versionPattern 匹配点分版本号（如 126.0.6478.126）
var versionPattern = regexp.MustCompile(`\d+(?:\.\d+)+`)

// InstalledChromeVersion 检测已安装的Chrome版本（对外导出）
// 执行 google-chrome --version 并从输出中解析版本号
func InstalledChromeVersion(ctx context.Context, binary string) (string, error) {
	if binary == "" {
		binary = DefaultChromeBinary
	}

	out, err := exec.CommandContext(ctx, binary, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("执行%s --version失败: %w", binary, err)
	}

	version := ParseChromeVersion(string(out))
	if version == "" {
		return "", fmt.Errorf("无法从输出中解析Chrome版本: %q", strings.TrimSpace(string(out)))
	}
	return version, nil
}

// ParseChromeVersion 从版本命令输出中提取版本号（对外导出）
// 如 "Google Chrome 126.0.6478.126" -> "126.0.6478.126"，无匹配时返回空字符串
func ParseChromeVersion(output string) string {
	return versionPattern.FindString(output)
}

// MajorVersion 返回版本号的主版本（对外导出）
func MajorVersion(version string) (int, error) {
	head, _, _ := strings.Cut(version, ".")
	major, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("无效的版本号: %q", version)
	}
	return major, nil
}

// VersionsMatch 判断Chrome与chromedriver主版本是否一致（对外导出）
func VersionsMatch(chromeVersion, driverVersion string) bool {
	cm, err := MajorVersion(chromeVersion)
	if err != nil {
		return false
	}
	dm, err := MajorVersion(driverVersion)
	if err != nil {
		return false
	}
	return cm == dm
}
