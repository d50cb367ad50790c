package repository

import (
	"tubo-go/internal/model"

	"gorm.io/gorm"
)

type VideoRepository interface {
	GetByID(id int64) (*model.Video, error)
	GetByIDWithRefs(id int64) (*model.Video, error)
	GetByIDsWithRefs(ids []int64) ([]model.Video, error)
	Create(video *model.Video) error
	SetObjectName(id int64, objectName string) error
	Delete(id int64) error
	DeleteByIDs(ids []int64) error
	ListRecent(skip, limit int) ([]model.Video, int64, error)
	ListByChannel(channelID int64) ([]model.Video, error)
	ListByUploader(uploaderID int64) ([]model.Video, error)
	ListIDsByChannel(channelID int64) ([]int64, error)
	ListIDsByChannels(channelIDs []int64) ([]int64, error)
	ListIDsByUploader(uploaderID int64) ([]int64, error)
	SearchByTitle(query string, limit int) ([]model.Video, error)
	WithTx(tx *gorm.DB) VideoRepository
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

// WithTx 返回绑定到指定事务的副本
func (r *videoRepository) WithTx(tx *gorm.DB) VideoRepository {
	return &videoRepository{db: tx}
}

// GetByID 根据 ID 查询视频
func (r *videoRepository) GetByID(id int64) (*model.Video, error) {
	var video model.Video
	if err := r.db.Where("id = ?", id).First(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDWithRefs 查询视频并预载上传者和所属频道
func (r *videoRepository) GetByIDWithRefs(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Preload("Uploader").Preload("Channel").Where("id = ?", id).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDsWithRefs 批量查询视频并预载关联（搜索结果回表用）
func (r *videoRepository) GetByIDsWithRefs(ids []int64) ([]model.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var videos []model.Video
	err := r.db.Preload("Uploader").Preload("Channel").Where("id IN ?", ids).Find(&videos).Error
	return videos, err
}

// Create 创建视频记录
func (r *videoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// SetObjectName 回填存储对象名，上传流程里记录先落库拿到编号后调用
func (r *videoRepository) SetObjectName(id int64, objectName string) error {
	result := r.db.Model(&model.Video{}).Where("id = ?", id).Update("object_name", objectName)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 删除视频记录
func (r *videoRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Video{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByIDs 按 ID 列表批量删除（级联删除用）
func (r *videoRepository) DeleteByIDs(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Where("id IN ?", ids).Delete(&model.Video{}).Error
}

// ListRecent 按上传时间倒序的分页列表（首页信息流）
func (r *videoRepository) ListRecent(skip, limit int) ([]model.Video, int64, error) {
	var total int64
	if err := r.db.Model(&model.Video{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []model.Video
	err := r.db.Preload("Uploader").Preload("Channel").
		Order("created_at DESC").Offset(skip).Limit(limit).Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

// ListByChannel 某频道下的全部视频，按上传时间倒序
func (r *videoRepository) ListByChannel(channelID int64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Preload("Uploader").Where("channel_id = ?", channelID).
		Order("created_at DESC").Find(&videos).Error
	return videos, err
}

// ListByUploader 某用户上传的全部视频
func (r *videoRepository) ListByUploader(uploaderID int64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Preload("Channel").Where("uploader_id = ?", uploaderID).
		Order("created_at DESC").Find(&videos).Error
	return videos, err
}

// ListIDsByChannel 某频道下的视频 ID 列表
func (r *videoRepository) ListIDsByChannel(channelID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.Video{}).Where("channel_id = ?", channelID).Pluck("id", &ids).Error
	return ids, err
}

// ListIDsByChannels 多个频道下的视频 ID 列表
func (r *videoRepository) ListIDsByChannels(channelIDs []int64) ([]int64, error) {
	if len(channelIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := r.db.Model(&model.Video{}).Where("channel_id IN ?", channelIDs).Pluck("id", &ids).Error
	return ids, err
}

// ListIDsByUploader 某用户上传的视频 ID 列表
func (r *videoRepository) ListIDsByUploader(uploaderID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.Video{}).Where("uploader_id = ?", uploaderID).Pluck("id", &ids).Error
	return ids, err
}

// SearchByTitle 数据库内的标题/简介模糊搜索（ES 不可用时的兜底）
func (r *videoRepository) SearchByTitle(query string, limit int) ([]model.Video, error) {
	var videos []model.Video
	pattern := "%" + query + "%"
	err := r.db.Preload("Uploader").Preload("Channel").
		Where("title ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("created_at DESC").Limit(limit).Find(&videos).Error
	return videos, err
}
