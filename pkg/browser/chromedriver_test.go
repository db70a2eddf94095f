package browser

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDriverZip 构造包含chromedriver条目的zip包（测试辅助）
func buildDriverZip(t *testing.T, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	// 版本说明文件（真实zip包中同样存在额外条目）
	notes, err := w.Create("chromedriver-linux64/LICENSE.chromedriver")
	require.NoError(t, err)
	_, err = notes.Write([]byte("license text"))
	require.NoError(t, err)

	f, err := w.Create("chromedriver-linux64/chromedriver")
	require.NoError(t, err)
	_, err = f.Write(content)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	return buf.Bytes()
}

// newManifestServer 构造模拟版本清单与下载服务（测试辅助）
func newManifestServer(t *testing.T, version string, zipData []byte) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var server *httptest.Server

	mux.HandleFunc("/manifest.json", func(w http.ResponseWriter, r *http.Request) {
		manifest := fmt.Sprintf(`{
  "timestamp": "2024-08-12T10:00:00.000Z",
  "channels": {
    "Stable": {
      "channel": "Stable",
      "version": %q,
      "revision": "1300313",
      "downloads": {
        "chrome": [{"platform": "linux64", "url": "%s/chrome.zip"}],
        "chromedriver": [
          {"platform": "mac-x64", "url": "%s/mac.zip"},
          {"platform": "linux64", "url": "%s/chromedriver.zip"}
        ]
      }
    }
  }
}`, version, server.URL, server.URL, server.URL)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(manifest))
	})
	mux.HandleFunc("/chromedriver.zip", func(w http.ResponseWriter, r *http.Request) {
		w.Write(zipData)
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// TestInstaller_ResolveStable 测试从清单解析Stable渠道linux64下载信息
func TestInstaller_ResolveStable(t *testing.T) {
	zipData := buildDriverZip(t, []byte("fake-binary"))
	server := newManifestServer(t, "126.0.6478.126", zipData)

	installer := NewInstaller(server.URL+"/manifest.json", t.TempDir())
	release, err := installer.ResolveStable(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "126.0.6478.126", release.Version)
	assert.Equal(t, server.URL+"/chromedriver.zip", release.DownloadURL)
}

// TestInstaller_ResolveStable_NoPlatform 清单中无目标平台时报错
func TestInstaller_ResolveStable_NoPlatform(t *testing.T) {
	zipData := buildDriverZip(t, []byte("fake-binary"))
	server := newManifestServer(t, "126.0.6478.126", zipData)

	installer := NewInstaller(server.URL+"/manifest.json", t.TempDir())
	installer.Platform = "win64"

	_, err := installer.ResolveStable(context.Background())
	assert.Error(t, err)
}

// TestInstaller_Install 测试下载并解压安装chromedriver
func TestInstaller_Install(t *testing.T) {
	binary := []byte("#!/bin/true\nfake chromedriver")
	zipData := buildDriverZip(t, binary)
	server := newManifestServer(t, "126.0.6478.126", zipData)

	installDir := t.TempDir()
	installer := NewInstaller(server.URL+"/manifest.json", installDir)

	release, err := installer.ResolveStable(context.Background())
	require.NoError(t, err)

	path, err := installer.Install(context.Background(), release)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(installDir, "chromedriver"), path)

	// 安装的文件内容与权限正确
	installed, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, binary, installed)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

// TestInstaller_Install_Idempotent 重复安装直接覆盖
func TestInstaller_Install_Idempotent(t *testing.T) {
	zipData := buildDriverZip(t, []byte("v2"))
	server := newManifestServer(t, "126.0.6478.126", zipData)

	installDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(installDir, "chromedriver"), []byte("v1"), 0o755))

	installer := NewInstaller(server.URL+"/manifest.json", installDir)
	release, err := installer.ResolveStable(context.Background())
	require.NoError(t, err)

	path, err := installer.Install(context.Background(), release)
	require.NoError(t, err)

	installed, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), installed)
}

// stubChromeBinary 构造输出指定版本行的Chrome脚本（测试辅助）
func stubChromeBinary(t *testing.T, versionLine string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chrome")
	script := fmt.Sprintf("#!/bin/sh\necho %q\n", versionLine)
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// TestInstaller_Provision 版本一致时完成检测、解析、安装全流程
func TestInstaller_Provision(t *testing.T) {
	zipData := buildDriverZip(t, []byte("fake-binary"))
	server := newManifestServer(t, "126.0.6478.126", zipData)
	chrome := stubChromeBinary(t, "Google Chrome 126.0.6478.55")

	installDir := t.TempDir()
	installer := NewInstaller(server.URL+"/manifest.json", installDir)

	report, err := installer.Provision(context.Background(), chrome)
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Equal(t, "126.0.6478.55", report.ChromeVersion)
	assert.Equal(t, "126.0.6478.126", report.DriverVersion)
	assert.Equal(t, filepath.Join(installDir, "chromedriver"), report.DriverPath)
}

// TestInstaller_Provision_VersionMismatch 主版本不一致时快速失败
// 报告仍返回，Matched为false，便于调用方打印两侧版本
func TestInstaller_Provision_VersionMismatch(t *testing.T) {
	zipData := buildDriverZip(t, []byte("fake-binary"))
	server := newManifestServer(t, "126.0.6478.126", zipData)
	chrome := stubChromeBinary(t, "Google Chrome 999.0.0.0")

	installer := NewInstaller(server.URL+"/manifest.json", t.TempDir())

	report, err := installer.Provision(context.Background(), chrome)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "主版本不一致")
	require.NotNil(t, report)
	assert.False(t, report.Matched)
	assert.Equal(t, "999.0.0.0", report.ChromeVersion)
	assert.Equal(t, "126.0.6478.126", report.DriverVersion)
}

// TestExtractDriverBinary_NoEntry zip包中无chromedriver条目时报错
func TestExtractDriverBinary_NoEntry(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("chromedriver-linux64/README")
	require.NoError(t, err)
	f.Write([]byte("readme"))
	require.NoError(t, w.Close())

	_, err = extractDriverBinary(buf.Bytes())
	assert.Error(t, err)
}
