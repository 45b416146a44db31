package cache

import (
	"context"
	"time"

	"Evermatch/config"
	"Evermatch/storage/redis"
)

const (
	tokenPrefix = "token"
)

// SetRefreshToken 存储 refresh token 到 Redis
// Key: evm:token:refresh:{subject}
// TTL 和 refresh token 有效期一致
func SetRefreshToken(ctx context.Context, subject, refreshToken string) error {
	key := redis.Key(tokenPrefix, "refresh", subject)
	ttl := time.Duration(config.Cfg.JWTRefreshDays) * 24 * time.Hour

	return redis.Client().Set(ctx, key, refreshToken, ttl).Err()
}

// GetRefreshToken 从 Redis 获取 refresh token
func GetRefreshToken(ctx context.Context, subject string) (string, error) {
	key := redis.Key(tokenPrefix, "refresh", subject)
	return redis.Client().Get(ctx, key).Result()
}

// DeleteRefreshToken 删除 refresh token（登出或失效时）
func DeleteRefreshToken(ctx context.Context, subject string) error {
	key := redis.Key(tokenPrefix, "refresh", subject)
	return redis.Client().Del(ctx, key).Err()
}

// ValidateRefreshTokenExists 检查 refresh token 是否存在且匹配
func ValidateRefreshTokenExists(ctx context.Context, subject, refreshToken string) bool {
	storedToken, err := GetRefreshToken(ctx, subject)
	if err != nil {
		return false
	}
	return storedToken == refreshToken
}
