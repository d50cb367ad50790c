package dto

// AdminUserInfo 管理后台的用户条目，附带全频道粉丝总数
type AdminUserInfo struct {
	UserInfo
	TotalFollowers      int64  `json:"total_followers"`
	TotalFollowersLabel string `json:"total_followers_label"`
}

// UserListData 用户分页列表（管理后台）
type UserListData struct {
	Users      []AdminUserInfo `json:"users"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int64           `json:"total_pages"`
}

// FollowerAdjustRequest 批量调整粉丝数请求
type FollowerAdjustRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// ModeratorUpdateRequest 授予或撤销版主身份请求
type ModeratorUpdateRequest struct {
	IsModerator *bool `json:"is_moderator" binding:"required"`
}
