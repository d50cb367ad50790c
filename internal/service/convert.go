package service

import (
	"tubo-go/internal/api/dto"
	"tubo-go/internal/config"
	infraMinio "tubo-go/internal/infra/minio"
	"tubo-go/internal/model"
	"tubo-go/pkg/utils"
)

// 对象存储 Bucket 名
const (
	videoBucket  = "videos"
	avatarBucket = "avatars"
)

// publicObjectURL 拼出对象的公开访问地址
func publicObjectURL(bucket, objectName string) string {
	cfg := config.GetMinIO()
	return infraMinio.GetPublicURL(cfg.Endpoint, cfg.UseSSL, bucket, objectName)
}

func toUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:          user.ID,
		Username:    user.Username,
		Nickname:    user.Nickname,
		ProfilePic:  publicObjectURL(avatarBucket, user.ProfilePic),
		Bio:         user.Bio,
		Plan:        user.Plan,
		PlanExpiry:  user.PlanExpiry,
		IsModerator: user.IsModerator,
		UserRole:    user.UserRole,
		CreatedAt:   user.CreatedAt,
	}
}

func toChannelInfo(channel *model.Channel) *dto.ChannelInfo {
	info := &dto.ChannelInfo{
		ID:            channel.ID,
		Name:          channel.Name,
		Description:   channel.Description,
		OwnerID:       channel.OwnerID,
		FollowerCount: channel.FollowerCount,
		FollowerLabel: utils.FormatCount(channel.FollowerCount),
		CreatedAt:     channel.CreatedAt,
	}
	if channel.Owner.ID != 0 {
		info.Owner = &dto.OwnerBrief{
			ID:         channel.Owner.ID,
			Username:   channel.Owner.Username,
			Nickname:   channel.Owner.Nickname,
			ProfilePic: publicObjectURL(avatarBucket, channel.Owner.ProfilePic),
		}
	}
	return info
}

func toVideoInfo(video *model.Video) *dto.VideoInfo {
	info := &dto.VideoInfo{
		ID:          video.ID,
		Title:       video.Title,
		Description: video.Description,
		PlayURL:     publicObjectURL(videoBucket, video.ObjectName),
		FileFormat:  video.FileFormat,
		FileSize:    video.FileSize,
		ChannelID:   video.ChannelID,
		UploaderID:  video.UploaderID,
		CreatedAt:   video.CreatedAt,
	}
	if video.Channel.ID != 0 {
		info.ChannelName = video.Channel.Name
	}
	if video.Uploader.ID != 0 {
		info.Uploader = &dto.UploaderBrief{
			ID:         video.Uploader.ID,
			Username:   video.Uploader.Username,
			Nickname:   video.Uploader.Nickname,
			ProfilePic: publicObjectURL(avatarBucket, video.Uploader.ProfilePic),
		}
	}
	return info
}

func toCommentInfo(comment *model.Comment) *dto.CommentInfo {
	info := &dto.CommentInfo{
		ID:        comment.ID,
		VideoID:   comment.VideoID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if comment.User.ID != 0 {
		info.Username = comment.User.Username
		info.Nickname = comment.User.Nickname
		info.ProfilePic = publicObjectURL(avatarBucket, comment.User.ProfilePic)
	}
	return info
}

func toVideoInfoList(videos []model.Video) []dto.VideoInfo {
	infos := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		infos = append(infos, *toVideoInfo(&videos[i]))
	}
	return infos
}

func toChannelInfoList(channels []model.Channel) []dto.ChannelInfo {
	infos := make([]dto.ChannelInfo, 0, len(channels))
	for i := range channels {
		infos = append(infos, *toChannelInfo(&channels[i]))
	}
	return infos
}
