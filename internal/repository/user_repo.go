package repository

import (
	"time"

	"tubo-go/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(id int64) (*model.User, error)
	GetByUsername(username string) (*model.User, error)
	ExistsByUsername(username string) (bool, error)
	Create(user *model.User) error
	Update(id int64, updates map[string]interface{}) (*model.User, error)
	SetPlan(id int64, plan string, expiry *time.Time) error
	Delete(id int64) error
	ListWithFilter(skip, limit int, username *string) ([]model.User, int64, error)
	WithTx(tx *gorm.DB) UserRepository
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// WithTx 返回绑定到指定事务的副本
func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

// GetByID 根据 ID 查询用户
func (r *userRepository) GetByID(id int64) (*model.User, error) {
	var user model.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername 根据用户名查询用户
func (r *userRepository) GetByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByUsername 检查用户名是否已存在
func (r *userRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建用户
func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// Update 更新用户字段（传入 map，只改给定的列）
func (r *userRepository) Update(id int64, updates map[string]interface{}) (*model.User, error) {
	result := r.db.Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// SetPlan 设置套餐和到期时间（expiry 为 nil 表示清空）
// 单条 UPDATE，套餐字段和到期字段要么都改要么都不改
func (r *userRepository) SetPlan(id int64, plan string, expiry *time.Time) error {
	result := r.db.Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"plan": plan, "plan_expiry": expiry})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 删除用户（物理删除，级联逻辑在 service 层的事务里完成）
func (r *userRepository) Delete(id int64) error {
	result := r.db.Delete(&model.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListWithFilter 带用户名模糊筛选的分页查询（管理后台用）
func (r *userRepository) ListWithFilter(skip, limit int, username *string) ([]model.User, int64, error) {
	query := r.db.Model(&model.User{})

	if username != nil && *username != "" {
		query = query.Where("username ILIKE ?", "%"+*username+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	if err := query.Order("id ASC").Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
