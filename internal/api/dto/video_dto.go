package dto

import "time"

// VideoUploadRequest 视频上传请求（multipart/form-data）
type VideoUploadRequest struct {
	Title       string `form:"title" binding:"required,min=1,max=200"`
	Description string `form:"description" binding:"omitempty,max=5000"`
	ChannelID   int64  `form:"channel_id" binding:"required,gt=0"`
}

// UploaderBrief 视频中嵌套的上传者简要信息
type UploaderBrief struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Nickname   string `json:"nickname"`
	ProfilePic string `json:"profile_pic"`
}

// VideoInfo 视频信息
type VideoInfo struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	PlayURL     string         `json:"play_url"`
	FileFormat  string         `json:"file_format"`
	FileSize    int64          `json:"file_size"`
	ChannelID   int64          `json:"channel_id"`
	ChannelName string         `json:"channel_name,omitempty"`
	UploaderID  int64          `json:"uploader_id"`
	CreatedAt   time.Time      `json:"created_at"`
	Uploader    *UploaderBrief `json:"uploader,omitempty"`
}

// VideoDetailData 播放页数据
type VideoDetailData struct {
	Video       VideoInfo     `json:"video"`
	Likes       int64         `json:"likes"`
	Dislikes    int64         `json:"dislikes"`
	MyReaction  string        `json:"my_reaction"`
	IsFollowing bool          `json:"is_following"`
	ShowAd      bool          `json:"show_ad"`
	Comments    []CommentInfo `json:"comments"`
}

// VideoListData 视频分页列表
type VideoListData struct {
	Videos     []VideoInfo `json:"videos"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int64       `json:"total_pages"`
}

// ReactionData 表态变更后的最新计数
type ReactionData struct {
	VideoID    int64  `json:"video_id"`
	Likes      int64  `json:"likes"`
	Dislikes   int64  `json:"dislikes"`
	MyReaction string `json:"my_reaction"`
}
