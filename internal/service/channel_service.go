package service

import (
	"errors"

	"tubo-go/internal/api/dto"
	"tubo-go/internal/model"
	"tubo-go/internal/repository"
	"tubo-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrChannelNotFound = errors.New("频道不存在")
	ErrAdminOnly       = errors.New("只有管理员可以执行该操作")
)

type ChannelService struct {
	userRepo    repository.UserRepository
	channelRepo repository.ChannelRepository
	videoRepo   repository.VideoRepository
	followRepo  repository.FollowRepository
	publisher   EventPublisher
}

func NewChannelService(
	userRepo repository.UserRepository,
	channelRepo repository.ChannelRepository,
	videoRepo repository.VideoRepository,
	followRepo repository.FollowRepository,
	publisher EventPublisher,
) *ChannelService {
	return &ChannelService{
		userRepo:    userRepo,
		channelRepo: channelRepo,
		videoRepo:   videoRepo,
		followRepo:  followRepo,
		publisher:   publisher,
	}
}

// Create 创建频道，仅管理员可用
func (s *ChannelService) Create(actorID int64, req *dto.ChannelCreateRequest) (*dto.ChannelInfo, error) {
	actor, err := s.userRepo.GetByID(actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}

	channel := &model.Channel{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     actorID,
	}
	if err := s.channelRepo.Create(channel); err != nil {
		return nil, err
	}

	publishOrLog(s.publisher, channelUpsertEvent(channel))

	logger.Info("Channel created",
		zap.Int64("channel_id", channel.ID),
		zap.Int64("owner_id", actorID),
		zap.String("name", channel.Name),
	)
	return toChannelInfo(channel), nil
}

// GetPage 频道主页：频道信息、视频列表、当前访客的关注状态
// viewerID 为 nil 表示未登录访客
func (s *ChannelService) GetPage(channelID int64, viewerID *int64) (*dto.ChannelPageData, error) {
	channel, err := s.channelRepo.GetByIDWithOwner(channelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	videos, err := s.videoRepo.ListByChannel(channelID)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if viewerID != nil {
		isFollowing, err = s.followRepo.Exists(*viewerID, channelID)
		if err != nil {
			return nil, err
		}
	}

	return &dto.ChannelPageData{
		Channel:     *toChannelInfo(channel),
		Videos:      toVideoInfoList(videos),
		IsFollowing: isFollowing,
	}, nil
}
