package model

import "time"

// Video 视频模型
// 点赞/点踩数不做冗余列，读取时从 engagements 表实时统计
type Video struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:视频标识" json:"id"`
	Title       string    `gorm:"size:200;not null;comment:视频标题" json:"title"`
	Description string    `gorm:"type:text;comment:视频描述" json:"description"`
	ObjectName  string    `gorm:"size:255;not null;comment:MinIO对象名（按上传者/视频ID命名）" json:"object_name"`
	FileFormat  string    `gorm:"size:20;comment:文件格式" json:"file_format"`
	FileSize    int64     `gorm:"default:0;comment:文件大小（字节）" json:"file_size"`
	UploaderID  int64     `gorm:"not null;index:idx_videos_uploader_id;comment:上传者ID" json:"uploader_id"`
	ChannelID   int64     `gorm:"not null;index:idx_videos_channel_id;comment:所属频道ID" json:"channel_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_videos_created_at;comment:上传时间" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Uploader User    `gorm:"foreignKey:UploaderID" json:"uploader,omitempty"`
	Channel  Channel `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}
