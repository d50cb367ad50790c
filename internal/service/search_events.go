package service

import (
	"context"
	"time"

	"tubo-go/internal/config"
	infraKafka "tubo-go/internal/infra/kafka"
	"tubo-go/internal/model"
	"tubo-go/pkg/logger"

	"go.uber.org/zap"
)

// EventPublisher 搜索索引同步消息的发送抽象，测试用桩实现替换
type EventPublisher interface {
	Publish(ctx context.Context, event *infraKafka.SearchEvent) error
}

type kafkaEventPublisher struct{}

// NewKafkaEventPublisher 创建 Kafka 实现
func NewKafkaEventPublisher() EventPublisher {
	return &kafkaEventPublisher{}
}

func (p *kafkaEventPublisher) Publish(ctx context.Context, event *infraKafka.SearchEvent) error {
	topic := config.GetKafka().Topics["search_events"]
	return infraKafka.SendSearchEvent(ctx, topic, event)
}

// publishOrLog 发送失败只记日志，数据库状态已提交，不回滚业务操作
func publishOrLog(publisher EventPublisher, event *infraKafka.SearchEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := publisher.Publish(ctx, event); err != nil {
		logger.Error("Failed to publish search event",
			zap.String("action", event.Action),
			zap.String("entity", event.Entity),
			zap.Int64("id", event.ID),
			zap.Error(err),
		)
	}
}

func videoUpsertEvent(v *model.Video, channelName, uploaderName string) *infraKafka.SearchEvent {
	return &infraKafka.SearchEvent{
		Action: infraKafka.ActionUpsert,
		Entity: infraKafka.EntityVideo,
		ID:     v.ID,
		Video: &infraKafka.VideoDoc{
			ID:           v.ID,
			Title:        v.Title,
			Description:  v.Description,
			ChannelID:    v.ChannelID,
			ChannelName:  channelName,
			UploaderID:   v.UploaderID,
			UploaderName: uploaderName,
			CreatedAt:    v.CreatedAt.Unix(),
		},
	}
}

func videoDeleteEvent(videoID int64) *infraKafka.SearchEvent {
	return &infraKafka.SearchEvent{
		Action: infraKafka.ActionDelete,
		Entity: infraKafka.EntityVideo,
		ID:     videoID,
	}
}

func channelUpsertEvent(c *model.Channel) *infraKafka.SearchEvent {
	return &infraKafka.SearchEvent{
		Action: infraKafka.ActionUpsert,
		Entity: infraKafka.EntityChannel,
		ID:     c.ID,
		Channel: &infraKafka.ChannelDoc{
			ID:            c.ID,
			Name:          c.Name,
			Description:   c.Description,
			OwnerID:       c.OwnerID,
			FollowerCount: c.FollowerCount,
		},
	}
}

func channelDeleteEvent(channelID int64) *infraKafka.SearchEvent {
	return &infraKafka.SearchEvent{
		Action: infraKafka.ActionDelete,
		Entity: infraKafka.EntityChannel,
		ID:     channelID,
	}
}
