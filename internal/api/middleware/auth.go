package middleware

import (
	"strings"

	"tubo-go/internal/api/response"
	infraRedis "tubo-go/internal/infra/redis"
	"tubo-go/pkg/logger"
	"tubo-go/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextKeyUserID   = "currentUserID"
	ContextKeyUserRole = "currentUserRole"
	ContextKeyToken    = "currentToken"
)

// AuthRequired JWT 认证中间件，要求请求必须携带有效 Token
// 已注销的令牌在 Redis 黑名单里，同样视为无效
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "缺少认证令牌")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			response.Unauthorized(c, "无效或过期的认证令牌")
			c.Abort()
			return
		}

		blacklisted, err := infraRedis.IsTokenBlacklisted(c.Request.Context(), token)
		if err != nil {
			// Redis 故障时放行已通过签名校验的令牌，只记日志
			logger.Warn("Token blacklist check failed", zap.Error(err))
		} else if blacklisted {
			response.Unauthorized(c, "令牌已注销")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyToken, token)
		c.Next()
	}
}

// AuthOptional 可选认证中间件：有合法令牌则注入用户 ID，没有照常放行
// 播放页、频道页这类匿名可看的页面用它
func AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.Next()
			return
		}

		blacklisted, err := infraRedis.IsTokenBlacklisted(c.Request.Context(), token)
		if err == nil && blacklisted {
			c.Next()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyToken, token)
		c.Next()
	}
}

// GetCurrentUserID 从 Gin Context 中获取当前登录用户 ID
func GetCurrentUserID(c *gin.Context) (int64, bool) {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	userID, ok := val.(int64)
	return userID, ok
}

// GetCurrentToken 从 Gin Context 中获取当前请求的原始令牌
func GetCurrentToken(c *gin.Context) (string, bool) {
	val, exists := c.Get(ContextKeyToken)
	if !exists {
		return "", false
	}
	token, ok := val.(string)
	return token, ok
}

// UserRoleFetcher 用于获取用户角色的函数类型
type UserRoleFetcher func(userID int64) (string, error)

// AdminRequired 管理员权限中间件（必须在 AuthRequired 之后使用）
// roleFetcher 用于从数据库查询用户角色
func AdminRequired(roleFetcher UserRoleFetcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetCurrentUserID(c)
		if !ok {
			response.Unauthorized(c, "缺少认证信息")
			c.Abort()
			return
		}

		role, err := roleFetcher(userID)
		if err != nil {
			response.Unauthorized(c, "用户不存在")
			c.Abort()
			return
		}

		if role != "admin" {
			response.Forbidden(c, "需要管理员权限")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserRole, role)
		c.Next()
	}
}

// extractToken 从 Authorization 头中提取 Bearer Token
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
