package service

import (
	"errors"

	"tubo-go/internal/api/dto"
	"tubo-go/internal/data"
	"tubo-go/internal/model"
	"tubo-go/internal/repository"
	"tubo-go/pkg/logger"
	"tubo-go/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrAlreadyFollowing = errors.New("已经关注过该频道")
	ErrNotFollowing     = errors.New("尚未关注该频道")
)

type FollowService struct {
	channelRepo repository.ChannelRepository
	uow         data.UnitOfWork
	publisher   EventPublisher
}

func NewFollowService(
	channelRepo repository.ChannelRepository,
	uow data.UnitOfWork,
	publisher EventPublisher,
) *FollowService {
	return &FollowService{
		channelRepo: channelRepo,
		uow:         uow,
		publisher:   publisher,
	}
}

// Follow 关注频道：存在性检查、插入关注行、粉丝数加一，全在一个事务里
// 重复关注返回错误且不改任何状态
func (s *FollowService) Follow(userID, channelID int64) (*dto.FollowData, error) {
	err := s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		if _, err := repos.Channels.GetByID(channelID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrChannelNotFound
			}
			return err
		}

		exists, err := repos.Follows.Exists(userID, channelID)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyFollowing
		}

		if err := repos.Follows.Create(&model.Follow{UserID: userID, ChannelID: channelID}); err != nil {
			return err
		}
		return repos.Channels.IncrementFollowers(channelID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Channel followed", zap.Int64("user_id", userID), zap.Int64("channel_id", channelID))
	return s.followData(channelID, true)
}

// Unfollow 取消关注：删除关注行，真的删掉了才把粉丝数减一
// 减一语句带下限保护，计数不会变成负数
func (s *FollowService) Unfollow(userID, channelID int64) (*dto.FollowData, error) {
	err := s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		if _, err := repos.Channels.GetByID(channelID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrChannelNotFound
			}
			return err
		}

		removed, err := repos.Follows.Delete(userID, channelID)
		if err != nil {
			return err
		}
		if !removed {
			return ErrNotFollowing
		}
		return repos.Channels.DecrementFollowers(channelID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Channel unfollowed", zap.Int64("user_id", userID), zap.Int64("channel_id", channelID))
	return s.followData(channelID, false)
}

// followData 返回变更后的关注状态，同时把最新粉丝数同步到搜索索引
func (s *FollowService) followData(channelID int64, isFollowing bool) (*dto.FollowData, error) {
	channel, err := s.channelRepo.GetByID(channelID)
	if err != nil {
		return nil, err
	}

	publishOrLog(s.publisher, channelUpsertEvent(channel))

	return &dto.FollowData{
		ChannelID:     channelID,
		IsFollowing:   isFollowing,
		FollowerCount: channel.FollowerCount,
		FollowerLabel: utils.FormatCount(channel.FollowerCount),
	}, nil
}
