package dto

import "time"

// ChannelCreateRequest 创建频道请求
type ChannelCreateRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=120"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

// OwnerBrief 频道主简要信息
type OwnerBrief struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Nickname   string `json:"nickname"`
	ProfilePic string `json:"profile_pic"`
}

// ChannelInfo 频道信息
type ChannelInfo struct {
	ID            int64       `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	OwnerID       int64       `json:"owner_id"`
	FollowerCount int64       `json:"follower_count"`
	FollowerLabel string      `json:"follower_label"`
	CreatedAt     time.Time   `json:"created_at"`
	Owner         *OwnerBrief `json:"owner,omitempty"`
}

// ChannelPageData 频道主页数据
type ChannelPageData struct {
	Channel     ChannelInfo `json:"channel"`
	Videos      []VideoInfo `json:"videos"`
	IsFollowing bool        `json:"is_following"`
}

// FollowData 关注状态变更结果
type FollowData struct {
	ChannelID     int64  `json:"channel_id"`
	IsFollowing   bool   `json:"is_following"`
	FollowerCount int64  `json:"follower_count"`
	FollowerLabel string `json:"follower_label"`
}

// ChannelListData 频道分页列表（管理后台）
type ChannelListData struct {
	Channels   []ChannelInfo `json:"channels"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int64         `json:"total_pages"`
}
