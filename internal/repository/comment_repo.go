package repository

import (
	"tubo-go/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	GetByID(id int64) (*model.Comment, error)
	Create(comment *model.Comment) error
	Delete(id int64) error
	ListByVideo(videoID int64) ([]model.Comment, error)
	DeleteByVideoIDs(videoIDs []int64) error
	DeleteByUser(userID int64) error
	WithTx(tx *gorm.DB) CommentRepository
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// WithTx 返回绑定到指定事务的副本
func (r *commentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &commentRepository{db: tx}
}

// GetByID 根据 ID 查询评论
func (r *commentRepository) GetByID(id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Create 创建评论
func (r *commentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// Delete 删除评论
func (r *commentRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByVideo 某视频下的全部评论，按发表时间倒序，预载作者
func (r *commentRepository) ListByVideo(videoID int64) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.Preload("User").Where("video_id = ?", videoID).
		Order("created_at DESC").Find(&comments).Error
	return comments, err
}

// DeleteByVideoIDs 批量删除多个视频下的评论（级联删除用）
func (r *commentRepository) DeleteByVideoIDs(videoIDs []int64) error {
	if len(videoIDs) == 0 {
		return nil
	}
	return r.db.Where("video_id IN ?", videoIDs).Delete(&model.Comment{}).Error
}

// DeleteByUser 删除某用户发表的全部评论（级联删除用）
func (r *commentRepository) DeleteByUser(userID int64) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.Comment{}).Error
}
