package telegram

import (
	"context"
	"strconv"
	"strings"

	"lang_bot/internal/logger"
	"lang_bot/internal/telegram/service"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"
)

// handleLang 处理 /lang（/语言工具）管理命令
func (b *Bot) handleLang(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	b.sendMessage(ctx, msg.Chat.ID, b.langReply(ctx, msg), msg.ID)
}

func (b *Bot) langReply(ctx context.Context, msg *botModels.Message) string {
	_, rest, _ := parseCommand(msg.Text)

	req := service.AdminRequest{Args: strings.Fields(rest)}
	if isGroupChat(msg.Chat) {
		req.CurrentGroupID = strconv.FormatInt(msg.Chat.ID, 10)
	}
	if reply := msg.ReplyToMessage; reply != nil && reply.From != nil {
		req.ReplyUserID = strconv.FormatInt(reply.From.ID, 10)
	}

	logger.Chat(msg.Chat.ID, msg.From.ID).Infof("Lang admin command: args=%v", req.Args)
	return b.admin.Execute(ctx, req)
}
