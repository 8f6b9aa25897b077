package telegram

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lang_bot/internal/telegram/models"
	"lang_bot/internal/telegram/service"
)

type stubProber struct {
	latency time.Duration
	status  int
	err     error
}

func (p stubProber) Probe(context.Context) (time.Duration, int, error) {
	return p.latency, p.status, p.err
}

func newStatusBot(t *testing.T, prober EndpointProber, active bool) *Bot {
	t.Helper()

	store := service.NewSettingsStore(&memoryRepository{
		groups: map[string]models.GroupSettings{"-100": {Standard: true}, "-200": {CTE: true}},
		users:  []string{"7"},
	}, nil)
	store.Load(context.Background())

	return &Bot{
		settings:         store,
		prober:           prober,
		conversionActive: active,
	}
}

func TestBuildPingMessageHealthy(t *testing.T) {
	b := newStatusBot(t, stubProber{latency: 120 * time.Millisecond, status: 200}, true)

	got := b.buildPingMessage(context.Background())
	want := "🏓 Pong!\n" +
		"🌐 语言工具: 2 个群组设定，黑名单 1 人\n" +
		"🔤 繁简转换: OpenCC t2s\n" +
		"📡 翻译接口: 120ms（HTTP 200）"
	assert.Equal(t, want, got)
}

func TestBuildPingMessageDegraded(t *testing.T) {
	b := newStatusBot(t, stubProber{err: errors.New("dial tcp: refused")}, false)

	got := b.buildPingMessage(context.Background())
	assert.Contains(t, got, "🔤 繁简转换: ⚠️ 未启用（字典未加载，检查 OPENCC_DIR）")
	assert.Contains(t, got, "📡 翻译接口: ⚠️ 无法连接 (dial tcp: refused)")

	b.prober = stubProber{latency: 2 * time.Second, status: 502}
	assert.Contains(t, b.buildPingMessage(context.Background()), "📡 翻译接口: ⚠️ HTTP 502（2s）")
}

func TestBuildPingMessageWithPoolAndUptime(t *testing.T) {
	b := newStatusBot(t, nil, true)
	b.workerPool = NewWorkerPool(2, 8)
	t.Cleanup(b.workerPool.Shutdown)
	b.startTime = time.Now().Add(-(time.Hour + 5*time.Minute))

	got := b.buildPingMessage(context.Background())
	require.Contains(t, got, "🛠 工作池: 2 个协程，队列 0/8")
	assert.Contains(t, got, "⏱ 运行时间: 1小时 5分钟")
	assert.NotContains(t, got, "📡")
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: 0, want: "0秒"},
		{in: -time.Minute, want: "0秒"},
		{in: 400 * time.Millisecond, want: "0秒"},
		{in: 59 * time.Second, want: "59秒"},
		{in: time.Hour, want: "1小时"},
		{in: 26*time.Hour + 3*time.Second, want: "1天 2小时 3秒"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatUptime(tt.in), tt.in.String())
	}
}
