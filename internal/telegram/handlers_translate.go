package telegram

import (
	"context"

	"lang_bot/internal/logger"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"
)

// handleTranslate 处理 /翻译（/fy）命令
func (b *Bot) handleTranslate(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	reply := b.translateReply(ctx, msg)

	var userID int64
	if msg.From != nil {
		userID = msg.From.ID
	}
	logger.Chat(msg.Chat.ID, userID).Debug("Manual translation requested")

	b.sendMessage(ctx, msg.Chat.ID, reply, msg.ID)
}

// translateReply 回复他人消息时翻译被回复的内容，否则翻译指令参数
func (b *Bot) translateReply(ctx context.Context, msg *botModels.Message) string {
	_, text, _ := parseCommand(msg.Text)
	if reply := msg.ReplyToMessage; reply != nil {
		text = reply.Text
		if text == "" {
			text = reply.Caption
		}
	}
	return b.manual.Handle(ctx, text)
}
