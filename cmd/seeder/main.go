package main

import (
	"fmt"
	"log"
	"math/rand"

	"tubo-go/internal/config"
	"tubo-go/internal/infra/database"
	"tubo-go/internal/model"
	"tubo-go/internal/plan"
	"tubo-go/pkg/utils"

	"github.com/go-faker/faker/v4"
	"gorm.io/gorm/clause"
)

const (
	userCount       = 50
	channelCount    = 30
	videoCount      = 200
	commentCount    = 400
	followCount     = 300
	engagementCount = 600
)

// 演示数据填充：随机用户、频道、视频、评论、关注和表态
func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalf("连接数据库失败: %v", err)
	}
	defer database.Close()

	if err := database.AutoMigrate(
		&model.User{},
		&model.Channel{},
		&model.Video{},
		&model.Comment{},
		&model.Follow{},
		&model.Engagement{},
	); err != nil {
		log.Fatalf("迁移数据库失败: %v", err)
	}

	db := database.Get()

	fmt.Println("正在创建用户...")
	hashed, err := utils.HashPassword("password")
	if err != nil {
		log.Fatalf("密码加密失败: %v", err)
	}

	plans := []string{plan.Free, plan.Free, plan.Free, plan.Pro, plan.VIP}
	users := make([]model.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		user := model.User{
			Username: fmt.Sprintf("%s%d", faker.Username(), i),
			Nickname: faker.Name(),
			Password: hashed,
			Bio:      faker.Sentence(),
			Plan:     plans[rand.Intn(len(plans))],
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("创建用户失败: %v", err)
		}
		users = append(users, user)
	}
	fmt.Printf("已创建 %d 个用户\n", len(users))

	fmt.Println("正在创建频道...")
	channels := make([]model.Channel, 0, channelCount)
	for i := 0; i < channelCount; i++ {
		channel := model.Channel{
			Name:        faker.Word() + " " + faker.Word(),
			Description: faker.Sentence(),
			OwnerID:     users[rand.Intn(len(users))].ID,
		}
		if err := db.Create(&channel).Error; err != nil {
			log.Fatalf("创建频道失败: %v", err)
		}
		channels = append(channels, channel)
	}
	fmt.Printf("已创建 %d 个频道\n", len(channels))

	fmt.Println("正在创建视频...")
	videos := make([]model.Video, 0, videoCount)
	for i := 0; i < videoCount; i++ {
		channel := channels[rand.Intn(len(channels))]
		video := model.Video{
			Title:       faker.Sentence(),
			Description: faker.Paragraph(),
			FileFormat:  "mp4",
			FileSize:    int64(rand.Intn(100_000_000) + 1_000_000),
			UploaderID:  channel.OwnerID,
			ChannelID:   channel.ID,
		}
		if err := db.Create(&video).Error; err != nil {
			log.Fatalf("创建视频失败: %v", err)
		}
		video.ObjectName = fmt.Sprintf("%d/%d.mp4", channel.ID, video.ID)
		db.Model(&model.Video{}).Where("id = ?", video.ID).Update("object_name", video.ObjectName)
		videos = append(videos, video)
	}
	fmt.Printf("已创建 %d 个视频\n", len(videos))

	fmt.Println("正在创建评论...")
	for i := 0; i < commentCount; i++ {
		comment := model.Comment{
			VideoID: videos[rand.Intn(len(videos))].ID,
			UserID:  users[rand.Intn(len(users))].ID,
			Content: faker.Sentence(),
		}
		if err := db.Create(&comment).Error; err != nil {
			log.Fatalf("创建评论失败: %v", err)
		}
	}
	fmt.Printf("已创建 %d 条评论\n", commentCount)

	fmt.Println("正在创建关注关系...")
	for i := 0; i < followCount; i++ {
		follow := model.Follow{
			UserID:    users[rand.Intn(len(users))].ID,
			ChannelID: channels[rand.Intn(len(channels))].ID,
		}
		// 唯一键冲突时跳过，重复关注不报错
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "channel_id"}},
			DoNothing: true,
		}).Create(&follow)
	}

	// 把粉丝数对齐到关注行的真实数量
	if err := db.Exec(`UPDATE channels SET follower_count = (
		SELECT COUNT(*) FROM follows WHERE follows.channel_id = channels.id
	)`).Error; err != nil {
		log.Fatalf("同步粉丝数失败: %v", err)
	}
	fmt.Println("已创建关注关系并同步粉丝数")

	fmt.Println("正在创建表态...")
	kinds := []string{model.ReactionLike, model.ReactionLike, model.ReactionDislike}
	for i := 0; i < engagementCount; i++ {
		engagement := model.Engagement{
			UserID:  users[rand.Intn(len(users))].ID,
			VideoID: videos[rand.Intn(len(videos))].ID,
			Kind:    kinds[rand.Intn(len(kinds))],
		}
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoNothing: true,
		}).Create(&engagement)
	}
	fmt.Println("已创建表态")

	fmt.Println("演示数据填充完毕")
}
