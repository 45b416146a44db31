package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"Evermatch/config"
	"Evermatch/internal/queue"
	"Evermatch/internal/service"
	"Evermatch/pkg/logger"
	"Evermatch/pkg/snowflake"
	"Evermatch/storage"
)

// worker 负责消费申请完成事件，为通过网关的申请人创建面谈记录。
// 与 API 进程分开部署，消费速率不受请求高峰影响。
func main() {
	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	if err := queue.DeclareTopology(); err != nil {
		logger.Logger.Fatal("Failed to declare MQ topology", zap.Error(err))
	}

	// 把面谈排期服务注入消费者，避免 queue 与 service 互相依赖
	queue.SetInterviewScheduler(service.Interview())

	logger.Logger.Info("Worker starting",
		zap.String("service", config.Cfg.ServiceName),
		zap.String("environment", config.Cfg.Environment),
	)

	queue.StartAllConsumers(ctx)

	logger.Logger.Info("Worker shutting down gracefully")
}
