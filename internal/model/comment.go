package model

import "time"

// Comment 评论模型
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:评论ID" json:"id"`
	VideoID   int64     `gorm:"not null;index:idx_comments_video_id;comment:被评论视频ID" json:"video_id"`
	UserID    int64     `gorm:"not null;index:idx_comments_user_id;comment:评论用户ID" json:"user_id"`
	Content   string    `gorm:"type:text;not null;comment:评论内容" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:评论时间" json:"created_at"`

	// 关联关系
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
