package browser

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"time"
)

// Xvfb虚拟显示默认配置（与容器运行约定一致）
const (
	DefaultDisplayNumber = 99
	DefaultScreenWidth   = 1024
	DefaultScreenHeight  = 768
	DefaultScreenDepth   = 24

	// xvfbBinary Xvfb二进制名
	xvfbBinary = "Xvfb"
	// socketReadyTimeout 等待X socket就绪的超时
	socketReadyTimeout = 5 * time.Second
)

// Display Xvfb虚拟显示管理器（对外导出）
type Display struct {
	Number int // 显示编号（如99对应:99）
	Width  int
	Height int
	Depth  int

	cmd *exec.Cmd
}

// NewDisplay 创建Display（对外导出的工厂方法）
// 参数为0时使用默认值（:99，1024x768x24）
func NewDisplay(number, width, height, depth int) *Display {
	if number <= 0 {
		number = DefaultDisplayNumber
	}
	if width <= 0 {
		width = DefaultScreenWidth
	}
	if height <= 0 {
		height = DefaultScreenHeight
	}
	if depth <= 0 {
		depth = DefaultScreenDepth
	}
	return &Display{Number: number, Width: width, Height: height, Depth: depth}
}

// Name 返回DISPLAY环境变量值（如":99"）
func (d *Display) Name() string {
	return fmt.Sprintf(":%d", d.Number)
}

// ScreenArg 返回屏幕参数（如"1024x768x24"）
func (d *Display) ScreenArg() string {
	return fmt.Sprintf("%dx%dx%d", d.Width, d.Height, d.Depth)
}

// SocketPath 返回X server的unix socket路径
func (d *Display) SocketPath() string {
	return fmt.Sprintf("/tmp/.X11-unix/X%d", d.Number)
}

// Args 返回Xvfb启动参数
func (d *Display) Args() []string {
	return []string{d.Name(), "-screen", "0", d.ScreenArg()}
}

// Start 启动Xvfb并等待X socket就绪
func (d *Display) Start(ctx context.Context) error {
	if d.cmd != nil {
		return fmt.Errorf("虚拟显示%s已启动", d.Name())
	}

	cmd := exec.CommandContext(ctx, xvfbBinary, d.Args()...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("启动Xvfb失败: %w", err)
	}
	d.cmd = cmd

	if err := d.waitReady(ctx); err != nil {
		d.Stop()
		return err
	}

	log.Printf("✅ [虚拟显示] Xvfb已启动: display=%s, screen=%s", d.Name(), d.ScreenArg())
	return nil
}

// Export 将DISPLAY环境变量设置为本显示
// 后续启动的chromedriver/Chrome子进程将继承此变量
func (d *Display) Export() error {
	return os.Setenv("DISPLAY", d.Name())
}

// Stop 停止Xvfb
func (d *Display) Stop() error {
	if d.cmd == nil || d.cmd.Process == nil {
		return nil
	}
	if err := d.cmd.Process.Kill(); err != nil {
		return fmt.Errorf("停止Xvfb失败: %w", err)
	}
	d.cmd.Wait()
	d.cmd = nil
	log.Printf("✅ [虚拟显示] Xvfb已停止: display=%s", d.Name())
	return nil
}

// waitReady 轮询等待X socket出现（内部方法）
func (d *Display) waitReady(ctx context.Context) error {
	deadline := time.Now().Add(socketReadyTimeout)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(d.SocketPath()); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
	return fmt.Errorf("等待虚拟显示%s就绪超时", d.Name())
}
