package cache

import (
	"context"
	"time"

	"Evermatch/storage/redis"
)

const messagePrefix = "mq"

// TryMarkMessageProcessing 用 SETNX 原子标记消息进入处理，
// 返回 false 说明别的消费者已经在处理或处理过了
func TryMarkMessageProcessing(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	key := redis.Key(messagePrefix, "processing", messageID)
	return redis.Client().SetNX(ctx, key, 1, ttl).Result()
}

// MarkMessageProcessed 处理完成后延长标记的 TTL
func MarkMessageProcessed(ctx context.Context, messageID string, ttl time.Duration) error {
	key := redis.Key(messagePrefix, "processing", messageID)
	return redis.Client().Set(ctx, key, 1, ttl).Err()
}

// UnmarkMessageProcessing 处理失败时撤掉标记，允许重试
func UnmarkMessageProcessing(ctx context.Context, messageID string) {
	key := redis.Key(messagePrefix, "processing", messageID)
	redis.Client().Del(ctx, key)
}
