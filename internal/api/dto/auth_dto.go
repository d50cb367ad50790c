package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=80"`
	Nickname string `json:"nickname" binding:"omitempty,max=80"`
	Password string `json:"password" binding:"required,min=6,max=255"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=1,max=80"`
	Password string `json:"password" binding:"required,min=6,max=255"`
}

// TokenData 登录成功返回的 Token 信息
type TokenData struct {
	Token     string   `json:"token"`
	TokenType string   `json:"token_type"`
	ExpiresIn int      `json:"expires_in"`
	User      UserInfo `json:"user"`
}
