package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const probeTimeout = 5 * time.Second

// EndpointProber 探测翻译接口是否可用
type EndpointProber interface {
	Probe(ctx context.Context) (time.Duration, int, error)
}

// buildPingMessage 构建 /ping 命令的响应文本：运行状态、语言工具配置、繁简转换与翻译接口
func (b *Bot) buildPingMessage(ctx context.Context) string {
	lines := []string{"🏓 Pong!"}

	if !b.startTime.IsZero() {
		lines = append(lines, "⏱ 运行时间: "+formatUptime(time.Since(b.startTime)))
	}

	if b.workerPool != nil {
		stats := b.workerPool.Stats()
		lines = append(lines, fmt.Sprintf("🛠 工作池: %d 个协程，队列 %d/%d", stats.Workers, stats.QueueLength, stats.QueueCapacity))
	}

	if b.settings != nil {
		lines = append(lines, fmt.Sprintf("🌐 语言工具: %d 个群组设定，黑名单 %d 人", len(b.settings.ListGroups()), len(b.settings.ListBlacklist())))
	}

	if b.conversionActive {
		lines = append(lines, "🔤 繁简转换: OpenCC t2s")
	} else {
		lines = append(lines, "🔤 繁简转换: ⚠️ 未启用（字典未加载，检查 OPENCC_DIR）")
	}

	if b.prober != nil {
		lines = append(lines, b.probeLine(ctx))
	}

	return strings.Join(lines, "\n")
}

func (b *Bot) probeLine(ctx context.Context) string {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	latency, status, err := b.prober.Probe(probeCtx)
	switch {
	case err != nil:
		return fmt.Sprintf("📡 翻译接口: ⚠️ 无法连接 (%v)", err)
	case status < 200 || status >= 300:
		return fmt.Sprintf("📡 翻译接口: ⚠️ HTTP %d（%s）", status, latency.Round(time.Millisecond))
	default:
		return fmt.Sprintf("📡 翻译接口: %s（HTTP %d）", latency.Round(time.Millisecond), status)
	}
}

var uptimeUnits = []struct {
	unit  time.Duration
	label string
}{
	{24 * time.Hour, "天"},
	{time.Hour, "小时"},
	{time.Minute, "分钟"},
	{time.Second, "秒"},
}

// formatUptime 例如 "1天 2小时 5秒"；不足一秒显示 "0秒"
func formatUptime(d time.Duration) string {
	d = max(d, 0).Round(time.Second)

	var parts []string
	for _, u := range uptimeUnits {
		if n := d / u.unit; n > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", n, u.label))
			d -= n * u.unit
		}
	}
	if len(parts) == 0 {
		return "0秒"
	}
	return strings.Join(parts, " ")
}
