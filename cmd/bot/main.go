package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lang_bot/internal/app"
	"lang_bot/internal/config"
	"lang_bot/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 初始化logger（配置加载前先使用环境变量中的级别）
	logger.Init("", "")

	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatalf("配置加载失败: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	application, err := app.New(cfg)
	if err != nil {
		logger.L().Fatalf("应用初始化失败: %v", err)
	}

	runErr := application.Run(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := application.Close(closeCtx); err != nil {
		logger.L().Errorf("关闭服务失败: %v", err)
	}

	if runErr != nil {
		logger.L().Errorf("运行失败: %v", runErr)
		os.Exit(1)
	}
	logger.L().Info("Bot stopped gracefully")
}
