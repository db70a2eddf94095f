package browser

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Chrome-for-Testing版本清单相关常量
const (
	// DefaultManifestURL Chrome-for-Testing最新已知可用版本清单
	DefaultManifestURL = "https://googlechromelabs.github.io/chrome-for-testing/last-known-good-versions-with-downloads.json"
	// PlatformLinux64 目标平台
	PlatformLinux64 = "linux64"
	// StableChannel 稳定渠道名
	StableChannel = "Stable"
	// DefaultInstallDir chromedriver默认安装目录
	DefaultInstallDir = "/usr/local/bin"
)

// versionsManifest 版本清单JSON结构（内部使用）
type versionsManifest struct {
	Timestamp string                 `json:"timestamp"`
	Channels  map[string]channelInfo `json:"channels"`
}

// channelInfo 单个渠道的版本与下载信息
type channelInfo struct {
	Channel   string `json:"channel"`
	Version   string `json:"version"`
	Revision  string `json:"revision"`
	Downloads struct {
		Chrome       []downloadAsset `json:"chrome"`
		Chromedriver []downloadAsset `json:"chromedriver"`
	} `json:"downloads"`
}

// downloadAsset 单个平台的下载地址
type downloadAsset struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// DriverRelease 解析出的chromedriver发布信息
type DriverRelease struct {
	Version     string // chromedriver版本（与Chrome稳定版一致）
	DownloadURL string // linux64平台的zip下载地址
}

// ProvisionReport 环境准备结果报告
type ProvisionReport struct {
	ChromeVersion string // 已安装的Chrome版本
	DriverVersion string // 安装的chromedriver版本
	DriverPath    string // chromedriver安装路径
	Matched       bool   // 主版本是否一致
}

// Installer chromedriver安装器（对外导出）
type Installer struct {
	ManifestURL string // 版本清单地址（测试可替换）
	Platform    string // 目标平台
	InstallDir  string // 安装目录
	client      *http.Client
}

// NewInstaller 创建Installer（对外导出的工厂方法）
func NewInstaller(manifestURL, installDir string) *Installer {
	if manifestURL == "" {
		manifestURL = DefaultManifestURL
	}
	if installDir == "" {
		installDir = DefaultInstallDir
	}
	return &Installer{
		ManifestURL: manifestURL,
		Platform:    PlatformLinux64,
		InstallDir:  installDir,
		client:      &http.Client{Timeout: 5 * time.Minute},
	}
}

// ResolveStable 从版本清单解析Stable渠道的chromedriver发布信息
func (i *Installer) ResolveStable(ctx context.Context) (*DriverRelease, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.ManifestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("构建清单请求失败: %w", err)
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("获取版本清单失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("版本清单返回异常状态: %d", resp.StatusCode)
	}

	var manifest versionsManifest
	if err := json.NewDecoder(resp.Body).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("解析版本清单失败: %w", err)
	}

	stable, ok := manifest.Channels[StableChannel]
	if !ok {
		return nil, fmt.Errorf("版本清单中不存在%s渠道", StableChannel)
	}

	for _, asset := range stable.Downloads.Chromedriver {
		if asset.Platform == i.Platform {
			return &DriverRelease{
				Version:     stable.Version,
				DownloadURL: asset.URL,
			}, nil
		}
	}
	return nil, fmt.Errorf("%s渠道中不存在平台%s的chromedriver下载", StableChannel, i.Platform)
}

// Install 下载zip包并将chromedriver解压安装到安装目录
// 已存在时直接覆盖（幂等）
func (i *Installer) Install(ctx context.Context, release *DriverRelease) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, release.DownloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("构建下载请求失败: %w", err)
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("下载chromedriver失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("下载chromedriver返回异常状态: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取下载内容失败: %w", err)
	}

	binary, err := extractDriverBinary(data)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(i.InstallDir, 0o755); err != nil {
		return "", fmt.Errorf("创建安装目录失败: %w", err)
	}

	destPath := filepath.Join(i.InstallDir, "chromedriver")
	if err := os.WriteFile(destPath, binary, 0o755); err != nil {
		return "", fmt.Errorf("写入chromedriver失败: %w", err)
	}

	log.Printf("✅ [安装器] chromedriver已安装: version=%s, path=%s", release.Version, destPath)
	return destPath, nil
}

// Provision 一次性完成环境准备：解析、安装、版本校验
// Chrome与chromedriver主版本不一致时返回错误（快速失败）
func (i *Installer) Provision(ctx context.Context, chromeBinary string) (*ProvisionReport, error) {
	chromeVersion, err := InstalledChromeVersion(ctx, chromeBinary)
	if err != nil {
		return nil, err
	}
	log.Printf("ℹ️ [安装器] 检测到Chrome版本: %s", chromeVersion)

	release, err := i.ResolveStable(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("ℹ️ [安装器] Stable渠道chromedriver版本: %s", release.Version)

	driverPath, err := i.Install(ctx, release)
	if err != nil {
		return nil, err
	}

	report := &ProvisionReport{
		ChromeVersion: chromeVersion,
		DriverVersion: release.Version,
		DriverPath:    driverPath,
		Matched:       VersionsMatch(chromeVersion, release.Version),
	}
	if !report.Matched {
		return report, fmt.Errorf("Chrome与chromedriver主版本不一致: chrome=%s, driver=%s",
			chromeVersion, release.Version)
	}
	return report, nil
}

// extractDriverBinary 从zip包中提取chromedriver二进制（内部方法）
// zip内路径形如 chromedriver-linux64/chromedriver
func extractDriverBinary(data []byte) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("打开zip包失败: %w", err)
	}

	for _, f := range reader.File {
		if f.FileInfo().IsDir() || filepath.Base(f.Name) != "chromedriver" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("读取zip条目失败: %w", err)
		}
		defer rc.Close()

		binary, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("解压chromedriver失败: %w", err)
		}
		return binary, nil
	}
	return nil, fmt.Errorf("zip包中不存在chromedriver条目")
}
