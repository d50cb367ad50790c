package model

import "time"

// Channel 频道模型
// FollowerCount 是冗余计数，所有修改都必须和 follows 表的行变更放在同一个事务里
type Channel struct {
	ID            int64     `gorm:"primaryKey;autoIncrement;comment:频道标识" json:"id"`
	Name          string    `gorm:"size:100;not null;comment:频道名称" json:"name"`
	Description   string    `gorm:"type:text;comment:频道简介" json:"description"`
	FollowerCount int64     `gorm:"not null;default:0;comment:粉丝数（冗余计数）" json:"follower_count"`
	OwnerID       int64     `gorm:"not null;index:idx_channels_owner_id;comment:频道所有者ID" json:"owner_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Owner  User    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Videos []Video `gorm:"foreignKey:ChannelID" json:"videos,omitempty"`
}

func (Channel) TableName() string {
	return "channels"
}
