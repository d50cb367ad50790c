package dto

import "time"

// UserInfo 用户公开信息（不含密码）
type UserInfo struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Nickname    string     `json:"nickname"`
	ProfilePic  string     `json:"profile_pic"`
	Bio         string     `json:"bio"`
	Plan        string     `json:"plan"`
	PlanExpiry  *time.Time `json:"plan_expiry,omitempty"`
	IsModerator bool       `json:"is_moderator"`
	UserRole    string     `json:"user_role"`
	CreatedAt   time.Time  `json:"created_at"`
}

// UserUpdateRequest 资料更新请求
type UserUpdateRequest struct {
	Nickname *string `json:"nickname" binding:"omitempty,max=80"`
	Bio      *string `json:"bio" binding:"omitempty,max=2000"`
}

// UserProfileData 个人主页数据
type UserProfileData struct {
	User                UserInfo      `json:"user"`
	Channels            []ChannelInfo `json:"channels"`
	Videos              []VideoInfo   `json:"videos"`
	TotalFollowers      int64         `json:"total_followers"`
	TotalFollowersLabel string        `json:"total_followers_label"`
}

// AvatarData 头像上传结果
type AvatarData struct {
	ProfilePic string `json:"profile_pic"`
}
