package telegram

import (
	"context"

	"lang_bot/internal/logger"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"
)

// registerHandlers 注册所有命令处理器（异步执行）
// 未匹配任何指令的消息由默认 handler（handleTextMessage）处理
func (b *Bot) registerHandlers() {
	// 普通命令
	b.bot.RegisterHandlerMatchFunc(matchCommand(translateCommands...),
		b.asyncHandler(b.handleTranslate))
	b.bot.RegisterHandlerMatchFunc(matchCommand(pingCommands...),
		b.asyncHandler(b.handlePing))

	// 管理命令（仅 Owner）
	b.bot.RegisterHandlerMatchFunc(matchCommand(langCommands...),
		b.asyncHandler(b.RequireOwner(b.handleLang)))

	logger.L().Debug("All handlers registered with async execution")
}

// handleTextMessage 自动语言处理（翻译 / 繁简转换）
func (b *Bot) handleTextMessage(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.From.IsBot {
		return
	}

	msg := toMessage(update.Message)
	if msg == nil {
		return
	}

	resp, handled, err := b.features.Process(ctx, msg)
	if err != nil {
		logger.Chat(msg.ChatID, update.Message.From.ID).Errorf("Feature processing failed: %v", err)
		return
	}
	if !handled || resp == nil || resp.Text == "" {
		return
	}

	b.sendMessage(ctx, msg.ChatID, resp.Text, resp.ReplyTo)
}

// handlePing 处理 /ping 命令
func (b *Bot) handlePing(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
	if update.Message == nil {
		return
	}

	b.sendMessage(ctx, update.Message.Chat.ID, b.buildPingMessage(ctx))
}
