package features

import (
	"context"
	"sort"
	"strings"

	"lang_bot/internal/logger"
	"lang_bot/internal/telegram/features/langtools"
	"lang_bot/internal/telegram/features/types"
	"lang_bot/internal/telegram/models"
)

// Manager 功能管理器
// 负责注册、管理和执行所有功能插件
type Manager struct {
	features []Feature
}

// NewManager 创建功能管理器
func NewManager() *Manager {
	return &Manager{
		features: make([]Feature, 0),
	}
}

// Register 注册功能插件
// 功能会按优先级自动排序(优先级低的数字先执行)
func (m *Manager) Register(feature Feature) {
	m.features = append(m.features, feature)

	sort.SliceStable(m.features, func(i, j int) bool {
		return m.features[i].Priority() < m.features[j].Priority()
	})

	logger.L().Infof("Registered feature: %s (priority: %d)", feature.Name(), feature.Priority())
}

// Process 处理消息
// 指令消息（/ 或 ! 开头）不进入任何功能；其余按优先级顺序执行匹配的功能
func (m *Manager) Process(ctx context.Context, msg *models.Message) (resp *types.Response, handled bool, err error) {
	if msg == nil || strings.TrimSpace(msg.Text) == "" {
		return nil, false, nil
	}
	if langtools.IsCommand(msg.Text) {
		logger.L().Debugf("Skip feature processing for command text: chat_id=%d", msg.ChatID)
		return nil, false, nil
	}

	for _, feature := range m.features {
		if !feature.Match(ctx, msg) {
			continue
		}

		logger.L().Debugf("Feature %s matched message, processing...", feature.Name())

		resp, handled, err := feature.Process(ctx, msg)
		if handled || err != nil {
			logger.L().Debugf("Feature %s processed message (handled=%v, error=%v)", feature.Name(), handled, err)
			return resp, handled, err
		}
	}

	return nil, false, nil
}

// ListFeatures 列出所有已注册的功能(用于调试)
func (m *Manager) ListFeatures() []string {
	names := make([]string, len(m.features))
	for i, f := range m.features {
		names[i] = f.Name()
	}
	return names
}
