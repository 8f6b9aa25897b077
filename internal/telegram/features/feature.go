package features

import (
	"context"

	"lang_bot/internal/telegram/features/types"
	"lang_bot/internal/telegram/models"
)

// Feature 消息处理功能插件接口
//
// 每个功能插件需实现此接口,例如:
// - 语言工具: 外语翻译、繁简转换、中译英
// - 关键词回复: 匹配特定文本并返回固定内容
type Feature interface {
	// Name 返回功能名称(用于日志和调试)
	Name() string

	// Match 检查消息是否匹配该功能
	Match(ctx context.Context, msg *models.Message) bool

	// Process 处理消息并返回响应
	// 返回值说明:
	//   - (resp, true, nil): 成功处理,发送响应,停止后续功能
	//   - (nil, true, nil): 已处理但无需回复,停止后续功能
	//   - (nil, false, nil): 不处理,继续执行下一个功能
	Process(ctx context.Context, msg *models.Message) (resp *types.Response, handled bool, err error)

	// Priority 返回功能优先级(1-100)
	// 数值越小优先级越高,功能按优先级顺序执行
	Priority() int
}
