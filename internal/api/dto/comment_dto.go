package dto

import "time"

// CommentCreateRequest 发表评论请求
type CommentCreateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// CommentInfo 评论信息
type CommentInfo struct {
	ID         int64     `json:"id"`
	VideoID    int64     `json:"video_id"`
	UserID     int64     `json:"user_id"`
	Username   string    `json:"username"`
	Nickname   string    `json:"nickname"`
	ProfilePic string    `json:"profile_pic"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
