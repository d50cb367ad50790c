package service

import (
	"errors"

	"tubo-go/internal/api/dto"
	"tubo-go/internal/data"
	"tubo-go/internal/model"
	"tubo-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrBadReaction = errors.New("不支持的表态类型")

type EngagementService struct {
	uow data.UnitOfWork
}

func NewEngagementService(uow data.UnitOfWork) *EngagementService {
	return &EngagementService{uow: uow}
}

// React 点赞或点踩的三态切换，整个过程在一个事务里：
//   - 没有表态过：创建
//   - 重复同种表态：撤销
//   - 表态过另一种：翻转
//
// 每个用户对每个视频最多一条表态记录
func (s *EngagementService) React(userID, videoID int64, kind string) (*dto.ReactionData, error) {
	if kind != model.ReactionLike && kind != model.ReactionDislike {
		return nil, ErrBadReaction
	}

	var myReaction string
	var likes, dislikes int64

	err := s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		if _, err := repos.Videos.GetByID(videoID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVideoNotFound
			}
			return err
		}

		existing, err := repos.Engagements.GetByUserVideo(userID, videoID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := repos.Engagements.Create(&model.Engagement{
				UserID:  userID,
				VideoID: videoID,
				Kind:    kind,
			}); err != nil {
				return err
			}
			myReaction = kind
		case err != nil:
			return err
		case existing.Kind == kind:
			if err := repos.Engagements.Delete(existing.ID); err != nil {
				return err
			}
			myReaction = ""
		default:
			if err := repos.Engagements.UpdateKind(existing.ID, kind); err != nil {
				return err
			}
			myReaction = kind
		}

		likes, err = repos.Engagements.CountByVideo(videoID, model.ReactionLike)
		if err != nil {
			return err
		}
		dislikes, err = repos.Engagements.CountByVideo(videoID, model.ReactionDislike)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Reaction toggled",
		zap.Int64("user_id", userID),
		zap.Int64("video_id", videoID),
		zap.String("kind", kind),
		zap.String("result", myReaction),
	)

	return &dto.ReactionData{
		VideoID:    videoID,
		Likes:      likes,
		Dislikes:   dislikes,
		MyReaction: myReaction,
	}, nil
}
