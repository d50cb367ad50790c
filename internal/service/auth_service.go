package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"tubo-go/internal/api/dto"
	"tubo-go/internal/config"
	infraRedis "tubo-go/internal/infra/redis"
	"tubo-go/internal/model"
	"tubo-go/internal/repository"
	"tubo-go/pkg/logger"
	"tubo-go/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUsernameExists    = errors.New("用户名已存在")
	ErrUsernameHasSpace  = errors.New("用户名或密码不能包含空格")
	ErrInvalidCredential = errors.New("用户名或密码错误")
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register 用户注册
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.UserInfo, error) {
	if strings.ContainsAny(req.Username, " \t") || strings.ContainsAny(req.Password, " \t") {
		return nil, ErrUsernameHasSpace
	}

	exists, err := s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = req.Username
	}

	user := &model.User{
		Username: req.Username,
		Nickname: nickname,
		Password: hashedPassword,
		UserRole: model.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Info("User registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return toUserInfo(user), nil
}

// Login 用户登录，返回 token 数据
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.TokenData, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredential
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	expireSeconds := config.GetJWT().ExpireHours * 3600

	return &dto.TokenData{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: expireSeconds,
		User:      *toUserInfo(user),
	}, nil
}

// Logout 注销令牌，剩余有效期内进入 Redis 黑名单
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := utils.ParseToken(token)
	if err != nil {
		// 已过期或非法的令牌无需拉黑
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := infraRedis.BlacklistToken(ctx, token, ttl); err != nil {
		return err
	}

	logger.Info("User logged out", zap.Int64("user_id", claims.UserID))
	return nil
}

// GetCurrentUser 根据用户 ID 获取用户信息
func (s *AuthService) GetCurrentUser(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserInfo(user), nil
}
