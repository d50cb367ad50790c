package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tubo-go/internal/api/dto"
	infraES "tubo-go/internal/infra/elasticsearch"
	"tubo-go/internal/model"
	"tubo-go/internal/repository"
	"tubo-go/pkg/logger"

	"go.uber.org/zap"
)

// 单次搜索每类结果的条数上限
const searchLimit = 30

type SearchService struct {
	videoRepo   repository.VideoRepository
	channelRepo repository.ChannelRepository
}

func NewSearchService(videoRepo repository.VideoRepository, channelRepo repository.ChannelRepository) *SearchService {
	return &SearchService{videoRepo: videoRepo, channelRepo: channelRepo}
}

// Search 综合搜索视频和频道（ES 优先，失败则降级到 DB 模糊查询）
func (s *SearchService) Search(query string) (*dto.SearchResultData, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &dto.SearchResultData{
			Query:    query,
			Videos:   []dto.VideoInfo{},
			Channels: []dto.ChannelInfo{},
		}, nil
	}

	data, err := s.searchFromES(query)
	if err != nil {
		logger.Warn("ES search failed, fallback to DB", zap.String("query", query), zap.Error(err))
		return s.searchFromDB(query)
	}
	return data, nil
}

func (s *SearchService) searchFromES(query string) (*dto.SearchResultData, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	videoIDs, err := s.queryIndex(ctx, infraES.VideosIndexName(), query, []string{"title^3", "description"})
	if err != nil {
		return nil, err
	}
	channelIDs, err := s.queryIndex(ctx, infraES.ChannelsIndexName(), query, []string{"name^3", "description"})
	if err != nil {
		return nil, err
	}

	videos, err := s.videoRepo.GetByIDsWithRefs(videoIDs)
	if err != nil {
		return nil, err
	}
	channels, err := s.channelRepo.GetByIDs(channelIDs)
	if err != nil {
		return nil, err
	}

	return &dto.SearchResultData{
		Query:    query,
		Videos:   toVideoInfoList(orderVideos(videoIDs, videos)),
		Channels: toChannelInfoList(orderChannels(channelIDs, channels)),
	}, nil
}

// queryIndex 在单个索引上执行 multi_match，只取回文档 ID，详情回表查
func (s *SearchService) queryIndex(ctx context.Context, indexName, query string, fields []string) ([]int64, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":    query,
				"fields":   fields,
				"type":     "best_fields",
				"operator": "or",
			},
		},
		"_source": []string{"id"},
		"size":    searchLimit,
	}
	bodyJSON, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	resp, err := infraES.Search(ctx, indexName, bytes.NewReader(bodyJSON))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}
	return ids, nil
}

func (s *SearchService) searchFromDB(query string) (*dto.SearchResultData, error) {
	videos, err := s.videoRepo.SearchByTitle(query, searchLimit)
	if err != nil {
		return nil, err
	}
	channels, err := s.channelRepo.SearchByName(query, searchLimit)
	if err != nil {
		return nil, err
	}

	return &dto.SearchResultData{
		Query:    query,
		Videos:   toVideoInfoList(videos),
		Channels: toChannelInfoList(channels),
	}, nil
}

// orderVideos 按 ES 命中顺序重排回表结果
func orderVideos(ids []int64, videos []model.Video) []model.Video {
	byID := make(map[int64]*model.Video, len(videos))
	for i := range videos {
		byID[videos[i].ID] = &videos[i]
	}
	ordered := make([]model.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, *v)
		}
	}
	return ordered
}

func orderChannels(ids []int64, channels []model.Channel) []model.Channel {
	byID := make(map[int64]*model.Channel, len(channels))
	for i := range channels {
		byID[channels[i].ID] = &channels[i]
	}
	ordered := make([]model.Channel, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, *c)
		}
	}
	return ordered
}
