package redis

import (
	"context"
	"fmt"
	"time"

	"tubo-go/internal/config"
	"tubo-go/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var Client *redis.Client

// 已注销令牌的键前缀
const tokenBlacklistPrefix = "tubo:token:blacklist:"

// Init 初始化Redis客户端
func Init(cfg *config.RedisConfig) error {
	Client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", cfg.Addr()),
		zap.Int("db", cfg.DB),
		zap.Int("pool_size", cfg.PoolSize),
	)

	return nil
}

// Close 关闭Redis连接
func Close() error {
	if Client == nil {
		return nil
	}
	logger.Info("Redis connection closed")
	return Client.Close()
}

// Get 获取Redis客户端实例
func Get() *redis.Client {
	return Client
}

// BlacklistToken 把令牌加入注销黑名单，过期时间对齐令牌本身的剩余有效期
func BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	if Client == nil || ttl <= 0 {
		return nil
	}
	return Client.Set(ctx, tokenBlacklistPrefix+token, 1, ttl).Err()
}

// IsTokenBlacklisted 检查令牌是否已注销
// Redis 未接入时视为未注销
func IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	if Client == nil {
		return false, nil
	}
	n, err := Client.Exists(ctx, tokenBlacklistPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
