package database

import (
	"errors"
	"fmt"

	"tubo-go/internal/config"
	"tubo-go/internal/model"
	"tubo-go/internal/plan"
	"tubo-go/pkg/logger"
	"tubo-go/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EnsureAdmin 确保配置的管理员账号存在
// 账号已存在时只同步角色，不会覆盖密码；首次创建时附带示例频道和视频
func EnsureAdmin(cfg *config.AdminConfig) error {
	if cfg.Username == "" {
		return errors.New("admin username is empty")
	}

	var admin model.User
	err := DB.Where("username = ?", cfg.Username).First(&admin).Error
	if err == nil {
		if admin.UserRole != model.RoleAdmin {
			return DB.Model(&admin).Update("user_role", model.RoleAdmin).Error
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin = model.User{
		Username: cfg.Username,
		Nickname: cfg.Nickname,
		Password: hashed,
		Plan:     plan.VIP,
		UserRole: model.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	if err := seedAdminContent(&admin); err != nil {
		return err
	}

	logger.Info("Admin account created", zap.String("username", cfg.Username))
	return nil
}

// seedAdminContent 给新建的管理员账号创建示例频道和视频
func seedAdminContent(admin *model.User) error {
	channel := model.Channel{
		Name:        admin.Nickname,
		Description: "Canal oficial de la plataforma",
		OwnerID:     admin.ID,
	}
	if err := DB.Create(&channel).Error; err != nil {
		return fmt.Errorf("failed to create admin channel: %w", err)
	}

	videos := []model.Video{
		{
			Title:       "Bienvenido a Tubo",
			Description: "Un recorrido por la plataforma",
			ObjectName:  fmt.Sprintf("%d/samples/bienvenido.mp4", channel.ID),
			FileFormat:  "mp4",
			UploaderID:  admin.ID,
			ChannelID:   channel.ID,
		},
		{
			Title:       "Novedades del estudio",
			Description: "Lo que estamos preparando",
			ObjectName:  fmt.Sprintf("%d/samples/novedades.mp4", channel.ID),
			FileFormat:  "mp4",
			UploaderID:  admin.ID,
			ChannelID:   channel.ID,
		},
	}
	for i := range videos {
		if err := DB.Create(&videos[i]).Error; err != nil {
			return fmt.Errorf("failed to create admin video: %w", err)
		}
	}
	return nil
}
