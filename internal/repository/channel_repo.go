package repository

import (
	"tubo-go/internal/model"

	"gorm.io/gorm"
)

type ChannelRepository interface {
	GetByID(id int64) (*model.Channel, error)
	GetByIDWithOwner(id int64) (*model.Channel, error)
	GetByIDs(ids []int64) ([]model.Channel, error)
	Create(channel *model.Channel) error
	Delete(id int64) error
	ListByOwner(ownerID int64) ([]model.Channel, error)
	ListIDsByOwner(ownerID int64) ([]int64, error)
	ListWithFilter(skip, limit int, name *string) ([]model.Channel, int64, error)
	SearchByName(query string, limit int) ([]model.Channel, error)
	SumFollowersByOwner(ownerID int64) (int64, error)
	IncrementFollowers(id int64) error
	DecrementFollowers(id int64) error
	AddFollowers(id int64, amount int64) error
	RemoveFollowers(id int64, amount int64) error
	RemoveFollowersByOwner(ownerID int64, amount int64) error
	AddFollowersByOwner(ownerID int64, amount int64) error
	WithTx(tx *gorm.DB) ChannelRepository
}

type channelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &channelRepository{db: db}
}

// WithTx 返回绑定到指定事务的副本
func (r *channelRepository) WithTx(tx *gorm.DB) ChannelRepository {
	return &channelRepository{db: tx}
}

// GetByID 根据 ID 查询频道
func (r *channelRepository) GetByID(id int64) (*model.Channel, error) {
	var channel model.Channel
	if err := r.db.Where("id = ?", id).First(&channel).Error; err != nil {
		return nil, err
	}
	return &channel, nil
}

// GetByIDWithOwner 查询频道并预载频道主
func (r *channelRepository) GetByIDWithOwner(id int64) (*model.Channel, error) {
	var channel model.Channel
	if err := r.db.Preload("Owner").Where("id = ?", id).First(&channel).Error; err != nil {
		return nil, err
	}
	return &channel, nil
}

// GetByIDs 批量查询频道（搜索结果回表用）
func (r *channelRepository) GetByIDs(ids []int64) ([]model.Channel, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var channels []model.Channel
	err := r.db.Where("id IN ?", ids).Find(&channels).Error
	return channels, err
}

// Create 创建频道
func (r *channelRepository) Create(channel *model.Channel) error {
	return r.db.Create(channel).Error
}

// Delete 删除频道
func (r *channelRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Channel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByOwner 查询某用户名下的全部频道
func (r *channelRepository) ListByOwner(ownerID int64) ([]model.Channel, error) {
	var channels []model.Channel
	err := r.db.Where("owner_id = ?", ownerID).Order("id ASC").Find(&channels).Error
	return channels, err
}

// ListIDsByOwner 查询某用户名下的频道 ID 列表（级联删除用）
func (r *channelRepository) ListIDsByOwner(ownerID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.Channel{}).Where("owner_id = ?", ownerID).Pluck("id", &ids).Error
	return ids, err
}

// ListWithFilter 带名称模糊筛选的分页查询（管理后台用）
func (r *channelRepository) ListWithFilter(skip, limit int, name *string) ([]model.Channel, int64, error) {
	query := r.db.Model(&model.Channel{})

	if name != nil && *name != "" {
		query = query.Where("name ILIKE ?", "%"+*name+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var channels []model.Channel
	if err := query.Preload("Owner").Order("id ASC").Offset(skip).Limit(limit).Find(&channels).Error; err != nil {
		return nil, 0, err
	}

	return channels, total, nil
}

// SearchByName 数据库内的名称/简介模糊搜索（ES 不可用时的兜底）
func (r *channelRepository) SearchByName(query string, limit int) ([]model.Channel, error) {
	var channels []model.Channel
	pattern := "%" + query + "%"
	err := r.db.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("follower_count DESC").Limit(limit).Find(&channels).Error
	return channels, err
}

// SumFollowersByOwner 统计某用户全部频道的粉丝总数
func (r *channelRepository) SumFollowersByOwner(ownerID int64) (int64, error) {
	var total int64
	err := r.db.Model(&model.Channel{}).Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(follower_count), 0)").Scan(&total).Error
	return total, err
}

// IncrementFollowers 粉丝数加一
func (r *channelRepository) IncrementFollowers(id int64) error {
	return r.db.Model(&model.Channel{}).Where("id = ?", id).
		UpdateColumn("follower_count", gorm.Expr("follower_count + 1")).Error
}

// DecrementFollowers 粉丝数减一，带下限保护不会出现负数
func (r *channelRepository) DecrementFollowers(id int64) error {
	return r.db.Model(&model.Channel{}).Where("id = ? AND follower_count > 0", id).
		UpdateColumn("follower_count", gorm.Expr("follower_count - 1")).Error
}

// AddFollowers 批量增加粉丝数（管理员操作）
func (r *channelRepository) AddFollowers(id int64, amount int64) error {
	result := r.db.Model(&model.Channel{}).Where("id = ?", id).
		UpdateColumn("follower_count", gorm.Expr("follower_count + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RemoveFollowers 批量减少粉丝数，GREATEST 保证不会减到负数
func (r *channelRepository) RemoveFollowers(id int64, amount int64) error {
	result := r.db.Model(&model.Channel{}).Where("id = ?", id).
		UpdateColumn("follower_count", gorm.Expr("GREATEST(follower_count - ?, 0)", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AddFollowersByOwner 给某用户的每个频道都增加粉丝数
func (r *channelRepository) AddFollowersByOwner(ownerID int64, amount int64) error {
	return r.db.Model(&model.Channel{}).Where("owner_id = ?", ownerID).
		UpdateColumn("follower_count", gorm.Expr("follower_count + ?", amount)).Error
}

// RemoveFollowersByOwner 给某用户的每个频道都减少粉丝数，带下限保护
func (r *channelRepository) RemoveFollowersByOwner(ownerID int64, amount int64) error {
	return r.db.Model(&model.Channel{}).Where("owner_id = ?", ownerID).
		UpdateColumn("follower_count", gorm.Expr("GREATEST(follower_count - ?, 0)", amount)).Error
}
