package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tubo-go/internal/config"
	infraES "tubo-go/internal/infra/elasticsearch"
	infraKafka "tubo-go/internal/infra/kafka"
	"tubo-go/pkg/logger"

	"go.uber.org/zap"
)

// 搜索同步 worker：消费搜索事件并维护 Elasticsearch 索引
func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}
	defer infraES.Close()

	if err := infraES.InitIndexes(); err != nil {
		logger.Fatal("Failed to init elasticsearch indexes", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	topic := cfg.Kafka.Topics["search_events"]
	groupID := "tubo-go-search-worker"

	logger.Info("Search sync worker started",
		zap.String("topic", topic),
		zap.String("group", groupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	handler := func(event *infraKafka.SearchEvent) error {
		applyCtx, applyCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer applyCancel()
		return infraES.ApplySearchEvent(applyCtx, event)
	}

	infraKafka.StartSearchEventConsumer(ctx, cfg.Kafka.Brokers, topic, groupID, handler)
}
