package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"tubo-go/internal/api/dto"
	"tubo-go/internal/data"
	infraMinio "tubo-go/internal/infra/minio"
	"tubo-go/internal/model"
	"tubo-go/internal/plan"
	"tubo-go/internal/repository"
	"tubo-go/pkg/logger"
	"tubo-go/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrVideoNotFound     = errors.New("视频不存在")
	ErrVideoNoPermission = errors.New("没有权限操作该视频")
	ErrBadVideoExtension = errors.New("视频只支持 mp4 或 mp3 格式")
	ErrNotChannelOwner   = errors.New("只能上传到自己的频道")
)

// 允许的视频扩展名
var allowedVideoExts = map[string]bool{"mp4": true, "mp3": true}

type VideoService struct {
	userRepo       repository.UserRepository
	channelRepo    repository.ChannelRepository
	videoRepo      repository.VideoRepository
	commentRepo    repository.CommentRepository
	followRepo     repository.FollowRepository
	engagementRepo repository.EngagementRepository
	uow            data.UnitOfWork
	publisher      EventPublisher
}

func NewVideoService(
	userRepo repository.UserRepository,
	channelRepo repository.ChannelRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	followRepo repository.FollowRepository,
	engagementRepo repository.EngagementRepository,
	uow data.UnitOfWork,
	publisher EventPublisher,
) *VideoService {
	return &VideoService{
		userRepo:       userRepo,
		channelRepo:    channelRepo,
		videoRepo:      videoRepo,
		commentRepo:    commentRepo,
		followRepo:     followRepo,
		engagementRepo: engagementRepo,
		uow:            uow,
		publisher:      publisher,
	}
}

// Upload 上传视频：落库、MinIO 存储、搜索索引同步
// MinIO 上传失败会回滚已创建的记录
func (s *VideoService) Upload(uploaderID int64, req *dto.VideoUploadRequest, filename string, fileReader io.Reader, fileSize int64) (*dto.VideoInfo, error) {
	ext := utils.FileExt(filename)
	if !allowedVideoExts[ext] {
		return nil, ErrBadVideoExtension
	}

	channel, err := s.channelRepo.GetByID(req.ChannelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	uploader, err := s.userRepo.GetByID(uploaderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if channel.OwnerID != uploaderID && !uploader.IsAdmin() {
		return nil, ErrNotChannelOwner
	}

	video := &model.Video{
		Title:       req.Title,
		Description: req.Description,
		FileFormat:  ext,
		FileSize:    fileSize,
		UploaderID:  uploaderID,
		ChannelID:   req.ChannelID,
	}
	if err := s.videoRepo.Create(video); err != nil {
		return nil, err
	}

	// 按频道和视频编号命名，同名文件不会互相覆盖
	objectName := fmt.Sprintf("%d/%d.%s", req.ChannelID, video.ID, ext)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	contentType := "video/" + ext
	if ext == "mp3" {
		contentType = "audio/mpeg"
	}
	if _, err := infraMinio.UploadFile(ctx, videoBucket, objectName, fileReader, fileSize, contentType); err != nil {
		logger.Error("Upload to MinIO failed, rolling back video record",
			zap.Int64("video_id", video.ID), zap.Error(err))
		_ = s.videoRepo.Delete(video.ID)
		return nil, fmt.Errorf("上传文件失败: %w", err)
	}

	if err := s.videoRepo.SetObjectName(video.ID, objectName); err != nil {
		return nil, err
	}
	video.ObjectName = objectName

	publishOrLog(s.publisher, videoUpsertEvent(video, channel.Name, uploader.Username))

	logger.Info("Video uploaded",
		zap.Int64("video_id", video.ID),
		zap.Int64("channel_id", req.ChannelID),
		zap.Int64("uploader_id", uploaderID),
	)
	return toVideoInfo(video), nil
}

// GetDetail 播放页数据：视频、实时点赞点踩数、访客的表态和关注状态、广告开关、评论
// viewerID 为 nil 表示未登录访客
func (s *VideoService) GetDetail(videoID int64, viewerID *int64) (*dto.VideoDetailData, error) {
	video, err := s.videoRepo.GetByIDWithRefs(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	likes, err := s.engagementRepo.CountByVideo(videoID, model.ReactionLike)
	if err != nil {
		return nil, err
	}
	dislikes, err := s.engagementRepo.CountByVideo(videoID, model.ReactionDislike)
	if err != nil {
		return nil, err
	}

	myReaction := ""
	isFollowing := false
	showAd := false
	if viewerID != nil {
		engagement, err := s.engagementRepo.GetByUserVideo(*viewerID, videoID)
		if err == nil {
			myReaction = engagement.Kind
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		isFollowing, err = s.followRepo.Exists(*viewerID, video.ChannelID)
		if err != nil {
			return nil, err
		}

		viewer, err := s.userRepo.GetByID(*viewerID)
		if err != nil {
			return nil, err
		}
		// 只有已登录且无有效套餐的访客看到广告，匿名访客不插广告
		showAd = !plan.Active(viewer.Plan, viewer.PlanExpiry, time.Now())
	}

	comments, err := s.commentRepo.ListByVideo(videoID)
	if err != nil {
		return nil, err
	}
	commentInfos := make([]dto.CommentInfo, 0, len(comments))
	for i := range comments {
		commentInfos = append(commentInfos, *toCommentInfo(&comments[i]))
	}

	return &dto.VideoDetailData{
		Video:       *toVideoInfo(video),
		Likes:       likes,
		Dislikes:    dislikes,
		MyReaction:  myReaction,
		IsFollowing: isFollowing,
		ShowAd:      showAd,
		Comments:    commentInfos,
	}, nil
}

// Delete 删除视频：上传者本人或管理员
// 表态、评论、视频行在一个事务里删掉，提交后清理存储和搜索索引
func (s *VideoService) Delete(actorID, videoID int64) error {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	actor, err := s.userRepo.GetByID(actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if video.UploaderID != actorID && !actor.IsAdmin() {
		return ErrVideoNoPermission
	}

	err = s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		ids := []int64{videoID}
		if err := repos.Engagements.DeleteByVideoIDs(ids); err != nil {
			return err
		}
		if err := repos.Comments.DeleteByVideoIDs(ids); err != nil {
			return err
		}
		return repos.Videos.Delete(videoID)
	})
	if err != nil {
		return err
	}

	if video.ObjectName != "" {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := infraMinio.RemoveFile(ctx, videoBucket, video.ObjectName); err != nil {
			logger.Warn("Failed to remove video object",
				zap.Int64("video_id", videoID), zap.Error(err))
		}
	}

	publishOrLog(s.publisher, videoDeleteEvent(videoID))

	logger.Info("Video deleted", zap.Int64("video_id", videoID), zap.Int64("actor_id", actorID))
	return nil
}

// Feed 首页信息流，按上传时间倒序分页
func (s *VideoService) Feed(page, pageSize int) (*dto.VideoListData, error) {
	skip := (page - 1) * pageSize
	videos, total, err := s.videoRepo.ListRecent(skip, pageSize)
	if err != nil {
		return nil, err
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	return &dto.VideoListData{
		Videos:     toVideoInfoList(videos),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}
