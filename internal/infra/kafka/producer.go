package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tubo-go/internal/config"
	"tubo-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// 搜索事件动作
const (
	ActionUpsert = "upsert"
	ActionDelete = "delete"
)

// 搜索事件实体类型
const (
	EntityVideo   = "video"
	EntityChannel = "channel"
)

// VideoDoc 视频搜索文档
type VideoDoc struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelID    int64  `json:"channel_id"`
	ChannelName  string `json:"channel_name"`
	UploaderID   int64  `json:"uploader_id"`
	UploaderName string `json:"uploader_name"`
	CreatedAt    int64  `json:"created_at"`
}

// ChannelDoc 频道搜索文档
type ChannelDoc struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	OwnerID       int64  `json:"owner_id"`
	FollowerCount int64  `json:"follower_count"`
}

// SearchEvent 搜索索引同步消息体
// API 进程在数据库提交后发出，worker 进程消费并写入 Elasticsearch
type SearchEvent struct {
	Action  string      `json:"action"`
	Entity  string      `json:"entity"`
	ID      int64       `json:"id"`
	Video   *VideoDoc   `json:"video,omitempty"`
	Channel *ChannelDoc `json:"channel,omitempty"`
}

// InitProducer 初始化 Kafka 生产者
func InitProducer(cfg *config.KafkaConfig) error {
	producer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// SendSearchEvent 发送搜索索引同步消息
// 同一实体用固定 key，保证分区内按序消费
func SendSearchEvent(ctx context.Context, topic string, event *SearchEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal search event: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(fmt.Sprintf("%s-%d", event.Entity, event.ID)),
		Value: payload,
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send search event: %w", err)
	}

	logger.Info("Search event sent",
		zap.String("action", event.Action),
		zap.String("entity", event.Entity),
		zap.Int64("id", event.ID),
		zap.String("topic", topic),
	)

	return nil
}

// CloseProducer 关闭生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}
