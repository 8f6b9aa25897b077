package langtools

import (
	"context"
	"strings"
	"time"

	"lang_bot/internal/logger"
	"lang_bot/internal/metrics"
	"lang_bot/internal/telegram/features/types"
	"lang_bot/internal/telegram/models"
	"lang_bot/internal/translate"
)

// Translator 翻译接口
type Translator interface {
	Translate(ctx context.Context, text, target string) translate.Outcome
}

// SettingsSource 提供群组设定和用户黑名单的只读视图
type SettingsSource interface {
	Get(groupID string) (models.GroupSettings, bool)
	IsBlacklisted(userID string) bool
}

// Feature 自动语言处理：外语翻译、中译英、繁简转换
type Feature struct {
	engine     *Engine
	settings   SettingsSource
	translator Translator
	metrics    *metrics.Metrics
}

// New 创建自动语言处理功能；m 可以为 nil
func New(engine *Engine, settings SettingsSource, translator Translator, m *metrics.Metrics) *Feature {
	return &Feature{
		engine:     engine,
		settings:   settings,
		translator: translator,
		metrics:    m,
	}
}

func (f *Feature) Name() string {
	return "language_tools"
}

// Priority 最低优先级，让其他功能先处理
func (f *Feature) Priority() int {
	return 99
}

func (f *Feature) Match(ctx context.Context, msg *models.Message) bool {
	return strings.TrimSpace(msg.Text) != ""
}

func (f *Feature) Process(ctx context.Context, msg *models.Message) (*types.Response, bool, error) {
	action := f.engine.Decide(msg, f.snapshot(msg))
	f.metrics.ObserveAction(action.Kind.String())

	switch action.Kind {
	case ActionSendText:
		logger.L().Debugf("Script converted: chat_id=%d", msg.ChatID)
		return &types.Response{Text: action.Text, ReplyTo: msg.MessageID}, true, nil

	case ActionTranslate:
		start := time.Now()
		outcome := f.translator.Translate(ctx, action.Text, action.TargetLang)
		f.metrics.ObserveTranslation(metrics.SourceAuto, outcome.Status.String(), time.Since(start))

		reply, ok := outcome.Reply()
		if !ok {
			// 自动模式下失败不提示
			logger.L().Debugf("Auto translation produced no result: chat_id=%d, target=%s", msg.ChatID, action.TargetLang)
			return nil, true, nil
		}
		logger.L().Infof("Auto translated: chat_id=%d, target=%s, status=%s", msg.ChatID, action.TargetLang, outcome.Status)
		return &types.Response{Text: reply, ReplyTo: msg.MessageID}, true, nil

	default:
		return nil, false, nil
	}
}

func (f *Feature) snapshot(msg *models.Message) Snapshot {
	snap := Snapshot{Blacklisted: f.settings.IsBlacklisted(msg.SenderID)}
	if msg.IsGroup() {
		snap.Group, _ = f.settings.Get(msg.GroupID)
	}
	return snap
}
