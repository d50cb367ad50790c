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
	ErrCommentNotFound     = errors.New("评论不存在")
	ErrCommentNoPermission = errors.New("没有权限删除该评论")
)

type CommentService struct {
	userRepo    repository.UserRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
}

func NewCommentService(
	userRepo repository.UserRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
) *CommentService {
	return &CommentService{
		userRepo:    userRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
	}
}

// Create 发表评论
func (s *CommentService) Create(userID, videoID int64, req *dto.CommentCreateRequest) (*dto.CommentInfo, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		VideoID: videoID,
		UserID:  userID,
		Content: req.Content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	comment.User = *user

	logger.Info("Comment created",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("video_id", videoID),
		zap.Int64("user_id", userID),
	)
	return toCommentInfo(comment), nil
}

// ListByVideo 某视频的评论列表
func (s *CommentService) ListByVideo(videoID int64) ([]dto.CommentInfo, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	comments, err := s.commentRepo.ListByVideo(videoID)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.CommentInfo, 0, len(comments))
	for i := range comments {
		infos = append(infos, *toCommentInfo(&comments[i]))
	}
	return infos, nil
}

// Delete 删除评论：作者本人、版主或管理员
func (s *CommentService) Delete(actorID, commentID int64) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
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
	if comment.UserID != actorID && !actor.IsModerator && !actor.IsAdmin() {
		return ErrCommentNoPermission
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		return err
	}

	logger.Info("Comment deleted",
		zap.Int64("comment_id", commentID),
		zap.Int64("actor_id", actorID),
	)
	return nil
}
