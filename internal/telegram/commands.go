package telegram

import (
	"strconv"
	"strings"

	"lang_bot/internal/telegram/models"

	botModels "github.com/go-telegram/bot/models"
)

// 指令名（不含前缀），第一个为主名称
var (
	translateCommands = []string{"翻译", "fy"}
	langCommands      = []string{"lang", "语言工具"}
	pingCommands      = []string{"ping"}
)

// parseCommand 解析 "/name@bot rest" 或 "!name rest"
// 返回小写指令名与去掉首尾空白的其余文本
func parseCommand(text string) (name, rest string, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" || (text[0] != '/' && text[0] != '!') {
		return "", "", false
	}

	head := text[1:]
	if i := strings.IndexFunc(head, isSpace); i >= 0 {
		rest = strings.TrimSpace(head[i:])
		head = head[:i]
	}
	if i := strings.IndexByte(head, '@'); i >= 0 {
		head = head[:i]
	}
	if head == "" {
		return "", "", false
	}

	return strings.ToLower(head), rest, true
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}

// matchCommand 匹配指定名称的指令消息
func matchCommand(names ...string) func(update *botModels.Update) bool {
	return func(update *botModels.Update) bool {
		if update.Message == nil {
			return false
		}
		name, _, ok := parseCommand(update.Message.Text)
		if !ok {
			return false
		}
		for _, n := range names {
			if name == n {
				return true
			}
		}
		return false
	}
}

func isGroupChat(chat botModels.Chat) bool {
	return chat.Type == "group" || chat.Type == "supergroup"
}

// toMessage 转换为自动处理使用的消息视图；无发送者或无文本时返回 nil
func toMessage(msg *botModels.Message) *models.Message {
	if msg == nil || msg.From == nil || msg.Text == "" {
		return nil
	}

	m := &models.Message{
		MessageID: msg.ID,
		ChatID:    msg.Chat.ID,
		Text:      msg.Text,
		Origin:    models.OriginDirect,
		SenderID:  strconv.FormatInt(msg.From.ID, 10),
	}
	if isGroupChat(msg.Chat) {
		m.Origin = models.OriginGroup
		m.GroupID = strconv.FormatInt(msg.Chat.ID, 10)
	}
	return m
}
