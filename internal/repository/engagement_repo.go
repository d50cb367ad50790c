package repository

import (
	"tubo-go/internal/model"

	"gorm.io/gorm"
)

type EngagementRepository interface {
	GetByUserVideo(userID, videoID int64) (*model.Engagement, error)
	Create(engagement *model.Engagement) error
	UpdateKind(id int64, kind string) error
	Delete(id int64) error
	CountByVideo(videoID int64, kind string) (int64, error)
	DeleteByVideoIDs(videoIDs []int64) error
	DeleteByUser(userID int64) error
	WithTx(tx *gorm.DB) EngagementRepository
}

type engagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// WithTx 返回绑定到指定事务的副本
func (r *engagementRepository) WithTx(tx *gorm.DB) EngagementRepository {
	return &engagementRepository{db: tx}
}

// GetByUserVideo 查询某用户对某视频的表态记录，没有则返回 gorm.ErrRecordNotFound
func (r *engagementRepository) GetByUserVideo(userID, videoID int64) (*model.Engagement, error) {
	var engagement model.Engagement
	err := r.db.Where("user_id = ? AND video_id = ?", userID, videoID).First(&engagement).Error
	if err != nil {
		return nil, err
	}
	return &engagement, nil
}

// Create 创建表态记录
func (r *engagementRepository) Create(engagement *model.Engagement) error {
	return r.db.Create(engagement).Error
}

// UpdateKind 把已有表态翻转为另一种类型
func (r *engagementRepository) UpdateKind(id int64, kind string) error {
	result := r.db.Model(&model.Engagement{}).Where("id = ?", id).Update("kind", kind)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 删除表态记录
func (r *engagementRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Engagement{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByVideo 统计某视频的某种表态数量，点赞数和点踩数都由这里实时算出
func (r *engagementRepository) CountByVideo(videoID int64, kind string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Engagement{}).
		Where("video_id = ? AND kind = ?", videoID, kind).Count(&count).Error
	return count, err
}

// DeleteByVideoIDs 批量删除多个视频的表态记录（级联删除用）
func (r *engagementRepository) DeleteByVideoIDs(videoIDs []int64) error {
	if len(videoIDs) == 0 {
		return nil
	}
	return r.db.Where("video_id IN ?", videoIDs).Delete(&model.Engagement{}).Error
}

// DeleteByUser 删除某用户的全部表态记录（级联删除用）
func (r *engagementRepository) DeleteByUser(userID int64) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.Engagement{}).Error
}
