package kafka

import (
	"context"
	"encoding/json"
	"time"

	"tubo-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// SearchEventHandler 处理搜索同步消息的回调函数
type SearchEventHandler func(event *SearchEvent) error

// StartSearchEventConsumer 启动搜索同步消费者（阻塞，需在 goroutine 中运行）
// ctx 取消后会自动停止
func StartSearchEventConsumer(ctx context.Context, brokers []string, topic, groupID string, handler SearchEventHandler) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka search event consumer stopped")
	}()

	logger.Info("Kafka search event consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		var event SearchEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("Failed to unmarshal search event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		if err := handler(&event); err != nil {
			logger.Error("Failed to handle search event",
				zap.String("action", event.Action),
				zap.String("entity", event.Entity),
				zap.Int64("id", event.ID),
				zap.Error(err),
			)
		}
	}
}
