package model

import "time"

// Follow 用户对频道的关注关系
// 联合唯一索引把 (user, channel) 唯一性交给数据库兜底，业务层仍先做存在性检查
type Follow struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:关注记录ID" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_follow_user_channel;index:idx_follows_user_id;comment:关注者ID" json:"user_id"`
	ChannelID int64     `gorm:"not null;uniqueIndex:uq_follow_user_channel;index:idx_follows_channel_id;comment:被关注频道ID" json:"channel_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:关注时间" json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}
