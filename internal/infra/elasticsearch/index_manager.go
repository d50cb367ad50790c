package elasticsearch

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"tubo-go/internal/config"
	"tubo-go/pkg/logger"

	"go.uber.org/zap"
)

// VideosIndexName 返回视频索引名
func VideosIndexName() string {
	name := config.GetElasticsearch().Index["videos"]
	if name == "" {
		name = "videos"
	}
	return name
}

// ChannelsIndexName 返回频道索引名
func ChannelsIndexName() string {
	name := config.GetElasticsearch().Index["channels"]
	if name == "" {
		name = "channels"
	}
	return name
}

// GetVideosIndexMapping 返回 videos 索引的 mapping
func GetVideosIndexMapping() string {
	return `{
		"settings": {
			"number_of_shards": 1,
			"number_of_replicas": 0
		},
		"mappings": {
			"properties": {
				"id": {"type": "long"},
				"channel_id": {"type": "long"},
				"channel_name": {"type": "keyword"},
				"uploader_id": {"type": "long"},
				"uploader_name": {"type": "keyword"},
				"title": {
					"type": "text",
					"analyzer": "standard",
					"fields": {"keyword": {"type": "keyword", "ignore_above": 200}}
				},
				"description": {
					"type": "text",
					"analyzer": "standard"
				},
				"created_at": {"type": "long"}
			}
		}
	}`
}

// GetChannelsIndexMapping 返回 channels 索引的 mapping
func GetChannelsIndexMapping() string {
	return `{
		"settings": {
			"number_of_shards": 1,
			"number_of_replicas": 0
		},
		"mappings": {
			"properties": {
				"id": {"type": "long"},
				"owner_id": {"type": "long"},
				"name": {
					"type": "text",
					"analyzer": "standard",
					"fields": {"keyword": {"type": "keyword", "ignore_above": 200}}
				},
				"description": {
					"type": "text",
					"analyzer": "standard"
				},
				"follower_count": {"type": "long"}
			}
		}
	}`
}

func ensureIndex(ctx context.Context, indexName, mapping string) error {
	exists, err := IndicesExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	if exists {
		logger.Info("Elasticsearch index already exists", zap.String("index", indexName))
		return nil
	}

	resp, err := IndicesCreate(ctx, indexName, bytes.NewReader([]byte(mapping)))
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch index created", zap.String("index", indexName))
	return nil
}

// InitIndexes 初始化所有索引（启动时调用）
func InitIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := ensureIndex(ctx, VideosIndexName(), GetVideosIndexMapping()); err != nil {
		return err
	}
	return ensureIndex(ctx, ChannelsIndexName(), GetChannelsIndexMapping())
}
