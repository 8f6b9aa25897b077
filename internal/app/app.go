package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"lang_bot/internal/config"
	"lang_bot/internal/convert"
	"lang_bot/internal/logger"
	"lang_bot/internal/metrics"
	"lang_bot/internal/mongo"
	"lang_bot/internal/telegram"
	"lang_bot/internal/telegram/features"
	"lang_bot/internal/telegram/features/langtools"
	"lang_bot/internal/telegram/repository"
	"lang_bot/internal/telegram/service"
	"lang_bot/internal/translate"
)

const (
	loadTimeout     = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// App 应用服务容器
// 负责管理所有服务的生命周期（初始化、运行、关闭）
type App struct {
	MongoDB     *mongo.Client
	Settings    *service.SettingsStore
	Metrics     *metrics.Metrics
	TelegramBot *telegram.Bot

	metricsServer *http.Server
}

// New 初始化应用及其所有服务
// 按顺序初始化各个服务，任何服务初始化失败都会返回错误
func New(cfg *config.Config) (*App, error) {
	app := &App{Metrics: metrics.New()}

	// 繁简转换字典
	converter, err := convert.Load(cfg.OpenCCDir)
	if err != nil {
		return nil, fmt.Errorf("init script converter failed: %w", err)
	}

	// 设定存储
	repo, err := app.newRepository(cfg)
	if err != nil {
		return nil, err
	}
	app.Settings = service.NewSettingsStore(repo, app.Metrics)

	loadCtx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	app.Settings.Load(loadCtx)
	cancel()

	// 语言工具
	translator := translate.NewClient(cfg.Translate)
	engine := langtools.NewEngine(converter, cfg.Translate.CTETarget)

	manager := features.NewManager()
	manager.Register(langtools.New(engine, app.Settings, translator, app.Metrics))

	// Telegram Bot
	app.TelegramBot, err = telegram.InitFromConfig(cfg, telegram.Deps{
		Settings: app.Settings,
		Admin:    service.NewLangAdmin(app.Settings),
		Manual:   langtools.NewManual(translator, app.Metrics),
		Features: manager,

		Prober:           translator,
		ConversionActive: convert.Active(converter),
	})
	if err != nil {
		_ = app.Close(context.Background()) // 清理已初始化的服务
		return nil, fmt.Errorf("init Telegram bot failed: %w", err)
	}
	app.Metrics.RegisterQueueDepth(app.TelegramBot.QueueLength)

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", app.Metrics.Handler())
		app.metricsServer = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return app, nil
}

func (a *App) newRepository(cfg *config.Config) (repository.SettingsRepository, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendMongo:
		client, err := mongo.InitFromConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("init MongoDB failed: %w", err)
		}
		a.MongoDB = client
		logger.L().Info("MongoDB initialized successfully")
		return repository.NewMongoSettingsRepository(client.Database()), nil

	default:
		repo, err := repository.NewFileSettingsRepository(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("init file store failed: %w", err)
		}
		logger.L().Infof("Using file settings store: %s", cfg.DataDir)
		return repo, nil
	}
}

// Run 运行 Bot 与 /metrics 服务，直到 ctx 取消或任一服务出错
func (a *App) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.TelegramBot.Start(gCtx)
	})

	if a.metricsServer != nil {
		g.Go(func() error {
			logger.L().Infof("Metrics server listening on %s", a.metricsServer.Addr)
			if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server failed: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return a.metricsServer.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Close 优雅关闭所有服务
// 应该在应用退出时调用，确保资源正确释放
func (a *App) Close(ctx context.Context) error {
	if a.MongoDB != nil {
		if err := a.MongoDB.Close(ctx); err != nil {
			return fmt.Errorf("close MongoDB failed: %w", err)
		}
	}
	return nil
}
