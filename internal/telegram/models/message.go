package models

// Origin 消息来源
type Origin string

const (
	OriginDirect Origin = "direct" // 私聊
	OriginGroup  Origin = "group"  // 群聊（group / supergroup）
)

// Message 自动处理使用的消息视图，由 Telegram 更新转换而来
type Message struct {
	MessageID int
	ChatID    int64
	Text      string
	Origin    Origin
	SenderID  string
	GroupID   string // 仅群聊消息有值
}

// IsGroup 是否来自群聊
func (m *Message) IsGroup() bool {
	return m.Origin == OriginGroup
}
