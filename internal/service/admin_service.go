package service

import (
	"context"
	"errors"
	"time"

	"tubo-go/internal/api/dto"
	"tubo-go/internal/data"
	infraMinio "tubo-go/internal/infra/minio"
	"tubo-go/internal/model"
	"tubo-go/internal/repository"
	"tubo-go/pkg/logger"
	"tubo-go/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AdminService 管理后台操作
// 角色校验在路由中间件完成，这里默认调用方已经是管理员
type AdminService struct {
	userRepo    repository.UserRepository
	channelRepo repository.ChannelRepository
	videoRepo   repository.VideoRepository
	uow         data.UnitOfWork
	publisher   EventPublisher
}

func NewAdminService(
	userRepo repository.UserRepository,
	channelRepo repository.ChannelRepository,
	videoRepo repository.VideoRepository,
	uow data.UnitOfWork,
	publisher EventPublisher,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		channelRepo: channelRepo,
		videoRepo:   videoRepo,
		uow:         uow,
		publisher:   publisher,
	}
}

// ListUsers 用户分页列表，支持用户名模糊筛选，附带每人的粉丝总数
func (s *AdminService) ListUsers(page, pageSize int, username *string) (*dto.UserListData, error) {
	skip := (page - 1) * pageSize
	users, total, err := s.userRepo.ListWithFilter(skip, pageSize, username)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.AdminUserInfo, 0, len(users))
	for i := range users {
		followers, err := s.channelRepo.SumFollowersByOwner(users[i].ID)
		if err != nil {
			return nil, err
		}
		infos = append(infos, dto.AdminUserInfo{
			UserInfo:            *toUserInfo(&users[i]),
			TotalFollowers:      followers,
			TotalFollowersLabel: utils.FormatCount(followers),
		})
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	return &dto.UserListData{
		Users:      infos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// ListChannels 频道分页列表，支持名称模糊筛选
func (s *AdminService) ListChannels(page, pageSize int, name *string) (*dto.ChannelListData, error) {
	skip := (page - 1) * pageSize
	channels, total, err := s.channelRepo.ListWithFilter(skip, pageSize, name)
	if err != nil {
		return nil, err
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	return &dto.ChannelListData{
		Channels:   toChannelInfoList(channels),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// DeleteChannel 删除频道及其全部内容：
// 先删视频的表态和评论，再删视频、关注关系，最后删频道行，一个事务完成
func (s *AdminService) DeleteChannel(channelID int64) error {
	if _, err := s.channelRepo.GetByID(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChannelNotFound
		}
		return err
	}

	videos, err := s.videoRepo.ListByChannel(channelID)
	if err != nil {
		return err
	}

	var videoIDs []int64
	for i := range videos {
		videoIDs = append(videoIDs, videos[i].ID)
	}

	err = s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		if err := repos.Engagements.DeleteByVideoIDs(videoIDs); err != nil {
			return err
		}
		if err := repos.Comments.DeleteByVideoIDs(videoIDs); err != nil {
			return err
		}
		if err := repos.Videos.DeleteByIDs(videoIDs); err != nil {
			return err
		}
		if err := repos.Follows.DeleteByChannel(channelID); err != nil {
			return err
		}
		return repos.Channels.Delete(channelID)
	})
	if err != nil {
		return err
	}

	s.cleanupVideoObjects(videos)
	for _, id := range videoIDs {
		publishOrLog(s.publisher, videoDeleteEvent(id))
	}
	publishOrLog(s.publisher, channelDeleteEvent(channelID))

	logger.Info("Channel deleted by admin",
		zap.Int64("channel_id", channelID),
		zap.Int("videos", len(videoIDs)),
	)
	return nil
}

// DeleteUser 删除用户及其全部痕迹：
// 本人的评论、表态、关注，名下频道的完整级联，上传的视频，最后删用户行
func (s *AdminService) DeleteUser(userID int64) error {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	channelIDs, err := s.channelRepo.ListIDsByOwner(userID)
	if err != nil {
		return err
	}

	// 名下频道里的视频 + 传到别人频道里的视频，一起删
	ownedVideoIDs, err := s.videoRepo.ListIDsByChannels(channelIDs)
	if err != nil {
		return err
	}
	uploadedVideoIDs, err := s.videoRepo.ListIDsByUploader(userID)
	if err != nil {
		return err
	}
	videoIDSet := make(map[int64]bool, len(ownedVideoIDs)+len(uploadedVideoIDs))
	var videoIDs []int64
	for _, id := range append(ownedVideoIDs, uploadedVideoIDs...) {
		if !videoIDSet[id] {
			videoIDSet[id] = true
			videoIDs = append(videoIDs, id)
		}
	}

	var videos []model.Video
	for _, id := range videoIDs {
		if v, err := s.videoRepo.GetByID(id); err == nil {
			videos = append(videos, *v)
		}
	}

	err = s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		if err := repos.Comments.DeleteByUser(userID); err != nil {
			return err
		}
		if err := repos.Engagements.DeleteByUser(userID); err != nil {
			return err
		}
		if err := repos.Follows.DeleteByUser(userID); err != nil {
			return err
		}
		if err := repos.Engagements.DeleteByVideoIDs(videoIDs); err != nil {
			return err
		}
		if err := repos.Comments.DeleteByVideoIDs(videoIDs); err != nil {
			return err
		}
		if err := repos.Videos.DeleteByIDs(videoIDs); err != nil {
			return err
		}
		if err := repos.Follows.DeleteByChannels(channelIDs); err != nil {
			return err
		}
		for _, channelID := range channelIDs {
			if err := repos.Channels.Delete(channelID); err != nil {
				return err
			}
		}
		return repos.Users.Delete(userID)
	})
	if err != nil {
		return err
	}

	s.cleanupVideoObjects(videos)
	for _, id := range videoIDs {
		publishOrLog(s.publisher, videoDeleteEvent(id))
	}
	for _, id := range channelIDs {
		publishOrLog(s.publisher, channelDeleteEvent(id))
	}

	logger.Info("User deleted by admin",
		zap.Int64("user_id", userID),
		zap.Int("channels", len(channelIDs)),
		zap.Int("videos", len(videoIDs)),
	)
	return nil
}

// SetModerator 授予或撤销版主身份
func (s *AdminService) SetModerator(userID int64, isModerator bool) (*dto.UserInfo, error) {
	user, err := s.userRepo.Update(userID, map[string]interface{}{"is_moderator": isModerator})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	logger.Info("Moderator flag updated",
		zap.Int64("user_id", userID),
		zap.Bool("is_moderator", isModerator),
	)
	return toUserInfo(user), nil
}

// AddChannelFollowers 给单个频道批量加粉
func (s *AdminService) AddChannelFollowers(channelID, amount int64) (*dto.ChannelInfo, error) {
	if err := s.channelRepo.AddFollowers(channelID, amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	return s.channelAfterAdjust(channelID, amount, "add")
}

// RemoveChannelFollowers 给单个频道批量减粉，减到零为止
func (s *AdminService) RemoveChannelFollowers(channelID, amount int64) (*dto.ChannelInfo, error) {
	if err := s.channelRepo.RemoveFollowers(channelID, amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	return s.channelAfterAdjust(channelID, amount, "remove")
}

func (s *AdminService) channelAfterAdjust(channelID, amount int64, op string) (*dto.ChannelInfo, error) {
	channel, err := s.channelRepo.GetByID(channelID)
	if err != nil {
		return nil, err
	}

	publishOrLog(s.publisher, channelUpsertEvent(channel))

	logger.Info("Channel followers adjusted",
		zap.Int64("channel_id", channelID),
		zap.Int64("amount", amount),
		zap.String("op", op),
	)
	return toChannelInfo(channel), nil
}

// AddUserFollowers 给某用户的每个频道批量加粉
func (s *AdminService) AddUserFollowers(userID, amount int64) error {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.channelRepo.AddFollowersByOwner(userID, amount); err != nil {
		return err
	}
	return s.republishOwnerChannels(userID, amount, "add")
}

// RemoveUserFollowers 给某用户的每个频道批量减粉，每个频道都减到零为止
func (s *AdminService) RemoveUserFollowers(userID, amount int64) error {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.channelRepo.RemoveFollowersByOwner(userID, amount); err != nil {
		return err
	}
	return s.republishOwnerChannels(userID, amount, "remove")
}

func (s *AdminService) republishOwnerChannels(userID, amount int64, op string) error {
	channels, err := s.channelRepo.ListByOwner(userID)
	if err != nil {
		return err
	}
	for i := range channels {
		publishOrLog(s.publisher, channelUpsertEvent(&channels[i]))
	}

	logger.Info("User channels followers adjusted",
		zap.Int64("user_id", userID),
		zap.Int64("amount", amount),
		zap.Int("channels", len(channels)),
		zap.String("op", op),
	)
	return nil
}

// cleanupVideoObjects 级联删除后清理对象存储，失败只记日志
func (s *AdminService) cleanupVideoObjects(videos []model.Video) {
	if len(videos) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	for i := range videos {
		if videos[i].ObjectName == "" {
			continue
		}
		if err := infraMinio.RemoveFile(ctx, videoBucket, videos[i].ObjectName); err != nil {
			logger.Warn("Failed to remove video object",
				zap.Int64("video_id", videos[i].ID), zap.Error(err))
		}
	}
}
