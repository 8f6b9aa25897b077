package types

// Response 表示功能输出内容，以纯文本回复触发消息
type Response struct {
	Text string
	// 回复的消息 ID，为 0 时直接发送
	ReplyTo int
}
