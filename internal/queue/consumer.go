package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"Evermatch/internal/cache"
	"Evermatch/internal/model"
	"Evermatch/pkg/errors"
	"Evermatch/pkg/logger"
	"Evermatch/storage/mq"
)

// InterviewScheduler worker 消费申请完成事件后的处理方，
// 接口解耦避免 queue 和 service 互相引用
type InterviewScheduler interface {
	CreateFromApplication(ctx context.Context, msg model.ApplicationCompletedMessage) error
}

var interviewScheduler InterviewScheduler

// SetInterviewScheduler 设置面谈排期服务（worker 启动时调用）
func SetInterviewScheduler(s InterviewScheduler) {
	interviewScheduler = s
}

// StartApplicationCompletedConsumer 启动申请完成消费者
func StartApplicationCompletedConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg model.ApplicationCompletedMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal application completed message: %w", err)
		}

		// 幂等检查：SETNX 原子标记，重复投递直接跳过
		// DB 侧 source_message_id 唯一索引是第二道防线
		processing, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID, 24*time.Hour)
		if err != nil {
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
			// 检查失败继续处理，DB 唯一索引兜底
		} else if !processing {
			logger.Logger.Info("Message already processed or being processed, skipping",
				zap.String("message_id", msg.MessageID),
				zap.Int64("application_id", msg.ApplicationID),
			)
			return &errors.SkipMessageError{Reason: fmt.Sprintf("message %s already processed", msg.MessageID)}
		}

		logger.Logger.Info("Processing application completed event",
			zap.String("message_id", msg.MessageID),
			zap.Int64("application_id", msg.ApplicationID),
			zap.Int64("user_id", msg.UserID),
		)

		if interviewScheduler == nil {
			cache.UnmarkMessageProcessing(ctx, msg.MessageID)
			return fmt.Errorf("interview scheduler not initialized")
		}

		if err := interviewScheduler.CreateFromApplication(ctx, msg); err != nil {
			if errors.IsSkipMessageError(err) {
				if markErr := cache.MarkMessageProcessed(ctx, msg.MessageID, 48*time.Hour); markErr != nil {
					logger.Logger.Warn("Failed to mark skipped message as processed",
						zap.String("message_id", msg.MessageID),
						zap.Error(markErr),
					)
				}
				return err
			}

			// 处理失败撤掉标记，允许重试
			cache.UnmarkMessageProcessing(ctx, msg.MessageID)
			return fmt.Errorf("failed to create interview: %w", err)
		}

		if err := cache.MarkMessageProcessed(ctx, msg.MessageID, 48*time.Hour); err != nil {
			logger.Logger.Warn("Failed to mark message as processed",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		}

		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         QueueApplicationCompleted,
		ConsumerTag:   "application_completed_consumer",
		PrefetchCount: 10,
		Handler:       handler,
	})
}

// StartAllConsumers 启动所有消费者（worker 启动时调用）
func StartAllConsumers(ctx context.Context) {
	var wg sync.WaitGroup

	consumers := []struct {
		name     string
		consumer func(context.Context) error
	}{
		{"application_completed", StartApplicationCompletedConsumer},
	}

	for _, c := range consumers {
		wg.Add(1)
		go func(name string, consumer func(context.Context) error) {
			defer wg.Done()

			logger.Logger.Info("Starting consumer",
				zap.String("consumer_name", name),
			)

			if err := consumer(ctx); err != nil {
				logger.Logger.Error("Consumer exited with error",
					zap.String("consumer_name", name),
					zap.Error(err),
				)
			}
		}(c.name, c.consumer)
	}

	wg.Wait()
}
