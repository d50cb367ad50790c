package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"tubo-go/internal/api/dto"
	infraMinio "tubo-go/internal/infra/minio"
	"tubo-go/internal/repository"
	"tubo-go/pkg/logger"
	"tubo-go/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNoFieldsToUpdate  = errors.New("没有需要更新的字段")
	ErrBadImageExtension = errors.New("头像只支持 jpg 或 png 格式")
)

// 允许的头像扩展名
var allowedAvatarExts = map[string]bool{"jpg": true, "png": true}

type UserService struct {
	userRepo    repository.UserRepository
	channelRepo repository.ChannelRepository
	videoRepo   repository.VideoRepository
}

func NewUserService(
	userRepo repository.UserRepository,
	channelRepo repository.ChannelRepository,
	videoRepo repository.VideoRepository,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		channelRepo: channelRepo,
		videoRepo:   videoRepo,
	}
}

// GetProfile 个人主页：用户信息、频道、上传的视频、全频道粉丝总数
func (s *UserService) GetProfile(username string) (*dto.UserProfileData, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	channels, err := s.channelRepo.ListByOwner(user.ID)
	if err != nil {
		return nil, err
	}

	videos, err := s.videoRepo.ListByUploader(user.ID)
	if err != nil {
		return nil, err
	}

	totalFollowers, err := s.channelRepo.SumFollowersByOwner(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.UserProfileData{
		User:                *toUserInfo(user),
		Channels:            toChannelInfoList(channels),
		Videos:              toVideoInfoList(videos),
		TotalFollowers:      totalFollowers,
		TotalFollowersLabel: utils.FormatCount(totalFollowers),
	}, nil
}

// UpdateProfile 更新昵称和简介
func (s *UserService) UpdateProfile(userID int64, req *dto.UserUpdateRequest) (*dto.UserInfo, error) {
	updates := make(map[string]interface{})
	if req.Nickname != nil {
		updates["nickname"] = *req.Nickname
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	user, err := s.userRepo.Update(userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

// UploadAvatar 上传头像到 MinIO 并更新资料
func (s *UserService) UploadAvatar(userID int64, filename string, reader io.Reader, fileSize int64) (*dto.AvatarData, error) {
	ext := utils.FileExt(filename)
	if !allowedAvatarExts[ext] {
		return nil, ErrBadImageExtension
	}

	// 按用户编号命名，旧头像直接被覆盖
	objectName := fmt.Sprintf("%d/avatar.%s", userID, ext)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	contentType := "image/" + ext
	if ext == "jpg" {
		contentType = "image/jpeg"
	}
	if _, err := infraMinio.UploadFile(ctx, avatarBucket, objectName, reader, fileSize, contentType); err != nil {
		return nil, fmt.Errorf("上传头像失败: %w", err)
	}

	if _, err := s.userRepo.Update(userID, map[string]interface{}{"profile_pic": objectName}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	logger.Info("Avatar updated", zap.Int64("user_id", userID), zap.String("object", objectName))
	return &dto.AvatarData{ProfilePic: publicObjectURL(avatarBucket, objectName)}, nil
}
