package langtools

import (
	"context"
	"strings"
	"time"

	"lang_bot/internal/logger"
	"lang_bot/internal/metrics"
	"lang_bot/internal/translate"
)

// 手动翻译提示文案
const (
	UsageMessage      = "用法：/翻译 <文本> 或 回复消息后输入 /翻译"
	URLRefusedMessage = "内容包含网址，为防止链接损坏，不进行翻译。"
	FailedMessage     = "翻译失败，请检查网络或稍后再试。"
)

// Manual 处理 /翻译 指令
type Manual struct {
	translator Translator
	metrics    *metrics.Metrics
}

// NewManual 创建手动翻译处理器；m 可以为 nil
func NewManual(translator Translator, m *metrics.Metrics) *Manual {
	return &Manual{translator: translator, metrics: m}
}

// Handle 翻译 text 并返回要回复的文本，总是有回复
// 调用方负责在回复场景下传入被回复消息的文本
func (h *Manual) Handle(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return UsageMessage
	}
	if ContainsURL(text) {
		return URLRefusedMessage
	}

	start := time.Now()
	outcome := h.translator.Translate(ctx, text, translate.TargetAuto)
	h.metrics.ObserveTranslation(metrics.SourceManual, outcome.Status.String(), time.Since(start))

	if reply, ok := outcome.Reply(); ok {
		return reply
	}

	logger.L().Warnf("Manual translation failed: %d chars", len([]rune(text)))
	return FailedMessage
}
