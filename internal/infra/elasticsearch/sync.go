package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"tubo-go/internal/infra/kafka"
	"tubo-go/pkg/logger"

	"go.uber.org/zap"
)

// ApplySearchEvent 把一条搜索同步消息落到对应索引
// worker 进程消费 Kafka 时调用
func ApplySearchEvent(ctx context.Context, event *kafka.SearchEvent) error {
	switch event.Entity {
	case kafka.EntityVideo:
		return applyVideoEvent(ctx, event)
	case kafka.EntityChannel:
		return applyChannelEvent(ctx, event)
	default:
		return fmt.Errorf("unknown search entity: %s", event.Entity)
	}
}

func applyVideoEvent(ctx context.Context, event *kafka.SearchEvent) error {
	docID := fmt.Sprintf("%d", event.ID)

	if event.Action == kafka.ActionDelete {
		return deleteDoc(ctx, VideosIndexName(), docID)
	}

	if event.Video == nil {
		return fmt.Errorf("upsert video event %d has no document", event.ID)
	}
	body, err := json.Marshal(event.Video)
	if err != nil {
		return err
	}
	return indexDoc(ctx, VideosIndexName(), docID, body)
}

func applyChannelEvent(ctx context.Context, event *kafka.SearchEvent) error {
	docID := fmt.Sprintf("%d", event.ID)

	if event.Action == kafka.ActionDelete {
		return deleteDoc(ctx, ChannelsIndexName(), docID)
	}

	if event.Channel == nil {
		return fmt.Errorf("upsert channel event %d has no document", event.ID)
	}
	body, err := json.Marshal(event.Channel)
	if err != nil {
		return err
	}
	return indexDoc(ctx, ChannelsIndexName(), docID, body)
}

func indexDoc(ctx context.Context, indexName, docID string, body []byte) error {
	resp, err := Index(ctx, indexName, docID, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Document indexed", zap.String("index", indexName), zap.String("id", docID))
	return nil
}

func deleteDoc(ctx context.Context, indexName, docID string) error {
	resp, err := Delete(ctx, indexName, docID)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// 文档不存在视为删除成功
	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}
