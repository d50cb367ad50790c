package model

import "time"

// 用户角色
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User 用户模型
type User struct {
	ID          int64      `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	Username    string     `gorm:"size:80;not null;uniqueIndex;comment:登录用户名" json:"username"`
	Nickname    string     `gorm:"size:80;comment:显示昵称" json:"nickname"`
	Password    string     `gorm:"size:255;not null;comment:密码哈希" json:"-"`
	ProfilePic  string     `gorm:"size:255;default:'default.jpg';comment:头像对象名" json:"profile_pic"`
	Bio         string     `gorm:"type:text;comment:个人简介" json:"bio"`
	Plan        string     `gorm:"size:20;not null;default:'Free';comment:订阅套餐" json:"plan"`
	PlanExpiry  *time.Time `gorm:"comment:套餐到期时间（仅Basic有效）" json:"plan_expiry"`
	IsModerator bool       `gorm:"not null;default:false;comment:版主标识" json:"is_moderator"`
	UserRole    string     `gorm:"size:20;not null;default:'user';comment:用户角色" json:"user_role"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;comment:注册时间" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Channels []Channel `gorm:"foreignKey:OwnerID" json:"channels,omitempty"`
	Videos   []Video   `gorm:"foreignKey:UploaderID" json:"videos,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.UserRole == RoleAdmin
}
