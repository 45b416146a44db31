package queue

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"Evermatch/internal/model"
	"Evermatch/pkg/logger"
	"Evermatch/pkg/snowflake"
	"Evermatch/storage/mq"
)

const (
	// ExchangeOnboarding 问卷域事件交换机
	ExchangeOnboarding = "onboarding.topic"

	// QueueApplicationCompleted worker 侧消费的申请完成队列
	QueueApplicationCompleted      = "onboarding.application.completed"
	RoutingKeyApplicationCompleted = "onboarding.application.completed"
)

// PublishApplicationCompleted 发布申请完成事件，worker 消费后创建待排期面谈
func PublishApplicationCompleted(ctx context.Context, msg model.ApplicationCompletedMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID()
		if err != nil {
			logger.Logger.Error("Failed to generate message ID",
				zap.Int64("application_id", msg.ApplicationID),
				zap.Error(err),
			)
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("app_completed_%d", id)
	}

	err := mq.PublishMessage(
		ExchangeOnboarding,
		RoutingKeyApplicationCompleted,
		msg,
	)

	if err != nil {
		logger.Logger.Error("Failed to publish application completed message",
			zap.String("message_id", msg.MessageID),
			zap.Int64("application_id", msg.ApplicationID),
			zap.Int64("user_id", msg.UserID),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published application completed message",
		zap.String("message_id", msg.MessageID),
		zap.Int64("application_id", msg.ApplicationID),
		zap.Int64("user_id", msg.UserID),
	)

	return nil
}
