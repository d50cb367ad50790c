package repository

import (
	"tubo-go/internal/model"

	"gorm.io/gorm"
)

type FollowRepository interface {
	Exists(userID, channelID int64) (bool, error)
	Create(follow *model.Follow) error
	Delete(userID, channelID int64) (bool, error)
	DeleteByChannel(channelID int64) error
	DeleteByChannels(channelIDs []int64) error
	DeleteByUser(userID int64) error
	WithTx(tx *gorm.DB) FollowRepository
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// WithTx 返回绑定到指定事务的副本
func (r *followRepository) WithTx(tx *gorm.DB) FollowRepository {
	return &followRepository{db: tx}
}

// Exists 检查关注关系是否存在
func (r *followRepository) Exists(userID, channelID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).
		Where("user_id = ? AND channel_id = ?", userID, channelID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建关注关系
func (r *followRepository) Create(follow *model.Follow) error {
	return r.db.Create(follow).Error
}

// Delete 删除关注关系，返回是否真的删掉了一行
func (r *followRepository) Delete(userID, channelID int64) (bool, error) {
	result := r.db.Where("user_id = ? AND channel_id = ?", userID, channelID).
		Delete(&model.Follow{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteByChannel 删除某频道的全部关注关系（级联删除用）
func (r *followRepository) DeleteByChannel(channelID int64) error {
	return r.db.Where("channel_id = ?", channelID).Delete(&model.Follow{}).Error
}

// DeleteByChannels 批量删除多个频道的关注关系
func (r *followRepository) DeleteByChannels(channelIDs []int64) error {
	if len(channelIDs) == 0 {
		return nil
	}
	return r.db.Where("channel_id IN ?", channelIDs).Delete(&model.Follow{}).Error
}

// DeleteByUser 删除某用户发起的全部关注关系（级联删除用）
func (r *followRepository) DeleteByUser(userID int64) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.Follow{}).Error
}
