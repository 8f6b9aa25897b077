package telegram

import (
	"context"
	"fmt"
	"time"

	"lang_bot/internal/config"
	"lang_bot/internal/logger"
	"lang_bot/internal/telegram/features"
	"lang_bot/internal/telegram/features/langtools"
	"lang_bot/internal/telegram/service"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"
)

// Config Telegram Bot 配置
type Config struct {
	Token     string  // Bot Token
	OwnerIDs  []int64 // Owner 用户 IDs
	Debug     bool    // 是否开启调试模式
	Workers   int     // 工作池协程数
	QueueSize int     // 工作池队列长度
}

// Deps Bot 依赖的业务组件
type Deps struct {
	Settings service.SettingsService
	Admin    *service.LangAdmin
	Manual   *langtools.Manual
	Features *features.Manager

	// 以下仅用于 /ping 状态展示，可为空
	Prober           EndpointProber
	ConversionActive bool
}

// Bot Telegram Bot 服务
type Bot struct {
	bot        *bot.Bot
	ownerIDs   []int64
	settings   service.SettingsService
	admin      *service.LangAdmin
	manual     *langtools.Manual
	features   *features.Manager
	workerPool *WorkerPool
	startTime  time.Time

	prober           EndpointProber
	conversionActive bool
}

// New 创建 Telegram Bot 实例
// opts 会追加到默认选项之后（测试中用于指定 API 地址）
func New(cfg Config, deps Deps, opts ...bot.Option) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram token cannot be empty")
	}
	if deps.Settings == nil || deps.Admin == nil || deps.Manual == nil || deps.Features == nil {
		return nil, fmt.Errorf("telegram bot dependencies are incomplete")
	}

	workers, queueSize := cfg.Workers, cfg.QueueSize
	if workers <= 0 {
		workers = config.DefaultWorkerCount
	}
	if queueSize <= 0 {
		queueSize = config.DefaultWorkerQueueSize
	}

	telegramBot := &Bot{
		ownerIDs: cfg.OwnerIDs,
		settings: deps.Settings,
		admin:    deps.Admin,
		manual:   deps.Manual,
		features: deps.Features,

		prober:           deps.Prober,
		conversionActive: deps.ConversionActive,
	}
	telegramBot.workerPool = NewWorkerPool(workers, queueSize)

	botOpts := []bot.Option{
		bot.WithDefaultHandler(telegramBot.asyncHandler(telegramBot.handleTextMessage)),
	}
	if cfg.Debug {
		botOpts = append(botOpts, bot.WithDebug())
	}
	botOpts = append(botOpts, opts...)

	b, err := bot.New(cfg.Token, botOpts...)
	if err != nil {
		telegramBot.workerPool.Shutdown()
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	telegramBot.bot = b

	// 注册 handlers
	telegramBot.registerHandlers()

	logger.L().Info("Telegram bot initialized successfully")
	return telegramBot, nil
}

// InitFromConfig 从应用配置初始化 Telegram Bot
func InitFromConfig(cfg *config.Config, deps Deps) (*Bot, error) {
	telegramCfg := Config{
		Token:     cfg.TelegramToken,
		OwnerIDs:  cfg.BotOwnerIDs,
		Debug:     cfg.LogLevel == "trace",
		Workers:   cfg.Worker.Count,
		QueueSize: cfg.Worker.QueueSize,
	}
	return New(telegramCfg, deps)
}

// Start 启动 Bot（阻塞式，ctx 取消后返回）
// 返回前等待工作池中的任务处理完毕
func (b *Bot) Start(ctx context.Context) error {
	logger.L().Info("Starting Telegram bot...")
	b.startTime = time.Now()
	b.bot.Start(ctx)
	logger.L().Info("Telegram bot stopped")

	b.workerPool.Shutdown()
	return nil
}

// QueueLength 当前等待处理的更新数
func (b *Bot) QueueLength() int {
	return b.workerPool.Stats().QueueLength
}

// asyncHandler 将 handler 提交到工作池执行，避免阻塞更新轮询
func (b *Bot) asyncHandler(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
		b.workerPool.Submit(HandlerTask{
			Ctx:         ctx,
			BotInstance: botInstance,
			Update:      update,
			Handler:     next,
		})
	}
}
