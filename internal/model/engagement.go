package model

import "time"

// 互动类型：点赞 / 点踩
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Engagement 用户对视频的互动记录
// 不变式：一个 (user, video) 对最多存在一行，Kind 表示当前状态
type Engagement struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:互动记录ID" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_engagement_user_video;comment:互动用户ID" json:"user_id"`
	VideoID   int64     `gorm:"not null;uniqueIndex:uq_engagement_user_video;index:idx_engagements_video_id;comment:目标视频ID" json:"video_id"`
	Kind      string    `gorm:"size:10;not null;comment:互动类型 like/dislike" json:"kind"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:互动时间" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`
}

func (Engagement) TableName() string {
	return "engagements"
}
