package store

import (
	"context"
	"encoding/json"
	"time"

	ri "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"Evermatch/config"
	"Evermatch/internal/model"
	"Evermatch/pkg/logger"
	"Evermatch/storage/redis"
)

const (
	draftPrefix    = "onboarding:draft"
	progressPrefix = "onboarding:progress"
)

// RedisStore 基于 Redis 的草稿存储，key 按设备会话 ID 隔离
// 草稿带 TTL，长期不回来填的自动过期
type RedisStore struct {
	ttl time.Duration
}

func NewRedisStore() *RedisStore {
	days := config.Cfg.DraftTTLDays
	if days <= 0 {
		days = 30
	}
	return &RedisStore{ttl: time.Duration(days) * 24 * time.Hour}
}

func draftKey(deviceID string) string {
	return redis.Key(draftPrefix, deviceID)
}

func progressKey(deviceID string) string {
	return redis.Key(progressPrefix, deviceID)
}

func (s *RedisStore) Read(ctx context.Context, deviceID string) model.AnswerSet {
	data, err := redis.Client().Get(ctx, draftKey(deviceID)).Result()
	if err != nil {
		if err != ri.Nil {
			logger.Logger.Warn("Failed to read onboarding draft",
				zap.String("device_id", deviceID),
				zap.Error(err),
			)
		}
		return nil
	}

	var answers model.AnswerSet
	if err := json.Unmarshal([]byte(data), &answers); err != nil {
		// 损坏数据按"无数据"处理，不是错误
		logger.Logger.Warn("Corrupt onboarding draft, treating as empty",
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
		return nil
	}
	return answers
}

func (s *RedisStore) Write(ctx context.Context, deviceID string, partial model.AnswerSet) {
	if len(partial) == 0 {
		return
	}

	merged := s.Read(ctx, deviceID).Merge(partial)

	data, err := json.Marshal(merged)
	if err != nil {
		logger.Logger.Warn("Failed to marshal onboarding draft",
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
		return
	}

	if err := redis.Client().Set(ctx, draftKey(deviceID), data, s.ttl).Err(); err != nil {
		logger.Logger.Warn("Failed to write onboarding draft",
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
	}
}

func (s *RedisStore) Clear(ctx context.Context, deviceID string) {
	if err := redis.Client().Del(ctx, draftKey(deviceID), progressKey(deviceID)).Err(); err != nil {
		logger.Logger.Warn("Failed to clear onboarding state",
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
	}
}

func (s *RedisStore) ReadProgress(ctx context.Context, deviceID string) *model.ProgressRecord {
	data, err := redis.Client().Get(ctx, progressKey(deviceID)).Result()
	if err != nil {
		if err != ri.Nil {
			logger.Logger.Warn("Failed to read onboarding progress",
				zap.String("device_id", deviceID),
				zap.Error(err),
			)
		}
		return nil
	}

	var record model.ProgressRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		logger.Logger.Warn("Corrupt onboarding progress, treating as empty",
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
		return nil
	}
	return &record
}

func (s *RedisStore) TouchProgress(ctx context.Context, deviceID string, step string) {
	record := s.ReadProgress(ctx, deviceID)
	if record == nil {
		record = &model.ProgressRecord{}
	}
	record.Touch(step, time.Now())

	data, err := json.Marshal(record)
	if err != nil {
		logger.Logger.Warn("Failed to marshal onboarding progress",
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
		return
	}

	if err := redis.Client().Set(ctx, progressKey(deviceID), data, s.ttl).Err(); err != nil {
		logger.Logger.Warn("Failed to write onboarding progress",
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
	}
}

// CommitStep 答案合并和进度标记走同一个 pipeline 一起提交
func (s *RedisStore) CommitStep(ctx context.Context, deviceID string, step string, partial model.AnswerSet) {
	merged := s.Read(ctx, deviceID).Merge(partial)

	record := s.ReadProgress(ctx, deviceID)
	if record == nil {
		record = &model.ProgressRecord{}
	}
	record.Touch(step, time.Now())

	draftData, err := json.Marshal(merged)
	if err != nil {
		logger.Logger.Warn("Failed to marshal onboarding draft",
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
		return
	}
	progressData, err := json.Marshal(record)
	if err != nil {
		logger.Logger.Warn("Failed to marshal onboarding progress",
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
		return
	}

	pipe := redis.Client().TxPipeline()
	pipe.Set(ctx, draftKey(deviceID), draftData, s.ttl)
	pipe.Set(ctx, progressKey(deviceID), progressData, s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Logger.Warn("Failed to commit onboarding step",
			zap.String("device_id", deviceID),
			zap.String("step", step),
			zap.Error(err),
		)
	}
}
