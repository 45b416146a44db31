package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"Evermatch/internal/model"
	"Evermatch/internal/model/dto"
	"Evermatch/pkg/errors"
	"Evermatch/pkg/logger"
	"Evermatch/pkg/snowflake"
	"Evermatch/storage/database"
)

var (
	interviewService *InterviewService
	interviewOnce    sync.Once
)

func Interview() *InterviewService {
	interviewOnce.Do(func() {
		interviewService = &InterviewService{}
	})
	return interviewService
}

type InterviewService struct{}

// CreateFromApplication worker 消费申请完成事件后创建待排期的面谈
// source_message_id 唯一索引保证同一条消息只建一条记录
func (s *InterviewService) CreateFromApplication(ctx context.Context, msg model.ApplicationCompletedMessage) error {
	publicID, err := snowflake.NextID()
	if err != nil {
		return err
	}

	interview := &model.Interview{
		PublicID:        publicID,
		ApplicationID:   msg.ApplicationID,
		UserID:          msg.UserID,
		Status:          model.InterviewStatusPending,
		SourceMessageID: msg.MessageID,
	}

	err = database.DB().WithContext(ctx).Create(interview).Error
	if err != nil {
		if isDuplicateKey(err) {
			return &errors.SkipMessageError{Reason: "interview already created for message " + msg.MessageID}
		}
		return err
	}

	// 申请进入排期阶段
	if err := database.DB().WithContext(ctx).
		Model(&model.Application{}).
		Where("public_id = ?", msg.ApplicationID).
		Update("status", model.ApplicationStatusReviewing).Error; err != nil {
		logger.Logger.Warn("Failed to move application to reviewing",
			zap.Int64("application_id", msg.ApplicationID),
			zap.Error(err),
		)
	}

	logger.Logger.Info("Interview created from application",
		zap.Int64("interview_id", publicID),
		zap.Int64("application_id", msg.ApplicationID),
		zap.Int64("user_id", msg.UserID),
	)
	return nil
}

// Schedule 面谈排期，只有 pending 状态能排
func (s *InterviewService) Schedule(ctx context.Context, interviewID int64, adminID int64, req dto.ScheduleInterviewRequest) (*dto.InterviewData, error) {
	if req.ScheduledAt.Before(time.Now()) {
		return nil, errors.InterviewSlotPassed
	}

	interview, err := s.findByPublicID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if interview.Status != model.InterviewStatusPending {
		return nil, errors.InterviewNotPending
	}

	assignee := adminID
	if req.AdminID != "" {
		parsed, err := strconv.ParseInt(req.AdminID, 10, 64)
		if err != nil {
			return nil, errors.AdminNotFound
		}
		assignee = parsed
	}

	updates := map[string]interface{}{
		"admin_id":     assignee,
		"scheduled_at": req.ScheduledAt,
		"status":       model.InterviewStatusScheduled,
	}
	if err := database.DB().WithContext(ctx).Model(interview).Updates(updates).Error; err != nil {
		logger.Logger.Error("Failed to schedule interview",
			zap.Int64("interview_id", interviewID),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Logger.Info("Interview scheduled",
		zap.Int64("interview_id", interviewID),
		zap.Int64("admin_id", assignee),
		zap.Time("scheduled_at", req.ScheduledAt),
	)

	return s.getData(ctx, interviewID)
}

// Update 改期或录入面谈结论
// 结论是 approved/rejected 时顺带推进会员和申请的状态
func (s *InterviewService) Update(ctx context.Context, interviewID int64, req dto.UpdateInterviewRequest) (*dto.InterviewData, error) {
	interview, err := s.findByPublicID(ctx, interviewID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.ScheduledAt != nil {
		if req.ScheduledAt.Before(time.Now()) {
			return nil, errors.InterviewSlotPassed
		}
		updates["scheduled_at"] = *req.ScheduledAt
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	var outcome model.InterviewOutcome
	if req.Outcome != nil {
		outcome = model.InterviewOutcome(*req.Outcome)
		switch outcome {
		case model.InterviewOutcomeApproved, model.InterviewOutcomeRejected:
			updates["outcome"] = outcome
			updates["status"] = model.InterviewStatusCompleted
		case model.InterviewOutcomeFollowUp:
			// 需要二次面谈，回到待排期
			updates["outcome"] = outcome
			updates["status"] = model.InterviewStatusPending
			updates["scheduled_at"] = nil
		default:
			return nil, errors.InterviewNotPending
		}
	}

	if len(updates) > 0 {
		if err := database.DB().WithContext(ctx).Model(interview).Updates(updates).Error; err != nil {
			logger.Logger.Error("Failed to update interview",
				zap.Int64("interview_id", interviewID),
				zap.Error(err),
			)
			return nil, err
		}
	}

	if outcome == model.InterviewOutcomeApproved || outcome == model.InterviewOutcomeRejected {
		s.applyOutcome(ctx, interview, outcome)
	}

	return s.getData(ctx, interviewID)
}

// List 面谈列表，按状态过滤，游标分页
func (s *InterviewService) List(ctx context.Context, query dto.InterviewListQuery) ([]dto.InterviewData, string, error) {
	limit := query.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	db := database.DB().WithContext(ctx).Model(&model.Interview{}).Order("id")
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.Cursor != "" {
		cursorID, err := strconv.ParseInt(query.Cursor, 10, 64)
		if err != nil {
			return nil, "", errors.InterviewNotFound
		}
		db = db.Where("id > ?", cursorID)
	}

	var interviews []model.Interview
	if err := db.Limit(limit + 1).Find(&interviews).Error; err != nil {
		logger.Logger.Error("Failed to list interviews", zap.Error(err))
		return nil, "", err
	}

	nextCursor := ""
	if len(interviews) > limit {
		interviews = interviews[:limit]
		nextCursor = strconv.FormatInt(interviews[len(interviews)-1].ID, 10)
	}

	out := make([]dto.InterviewData, 0, len(interviews))
	for i := range interviews {
		out = append(out, interviewData(&interviews[i]))
	}
	return out, nextCursor, nil
}

// Get 面谈详情
func (s *InterviewService) Get(ctx context.Context, interviewID int64) (*dto.InterviewData, error) {
	return s.getData(ctx, interviewID)
}

// applyOutcome 把面谈结论落到申请和会员上，失败只记日志，后台可以手工修
func (s *InterviewService) applyOutcome(ctx context.Context, interview *model.Interview, outcome model.InterviewOutcome) {
	db := database.DB().WithContext(ctx)

	applicationStatus := model.ApplicationStatusApproved
	userStatus := model.UserStatusActive
	if outcome == model.InterviewOutcomeRejected {
		applicationStatus = model.ApplicationStatusRejected
		userStatus = model.UserStatusRejected
	}

	if err := db.Model(&model.Application{}).
		Where("public_id = ?", interview.ApplicationID).
		Update("status", applicationStatus).Error; err != nil {
		logger.Logger.Error("Failed to apply outcome to application",
			zap.Int64("application_id", interview.ApplicationID),
			zap.Error(err),
		)
	}

	if err := db.Model(&model.User{}).
		Where("public_id = ?", interview.UserID).
		Update("status", userStatus).Error; err != nil {
		logger.Logger.Error("Failed to apply outcome to user",
			zap.Int64("user_id", interview.UserID),
			zap.Error(err),
		)
	}

	logger.Logger.Info("Interview outcome applied",
		zap.Int64("interview_id", interview.PublicID),
		zap.String("outcome", string(outcome)),
	)
}

func (s *InterviewService) findByPublicID(ctx context.Context, publicID int64) (*model.Interview, error) {
	var interview model.Interview
	err := database.DB().WithContext(ctx).Where("public_id = ?", publicID).First(&interview).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.InterviewNotFound
		}
		return nil, err
	}
	return &interview, nil
}

func (s *InterviewService) getData(ctx context.Context, publicID int64) (*dto.InterviewData, error) {
	interview, err := s.findByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	data := interviewData(interview)
	return &data, nil
}

func interviewData(interview *model.Interview) dto.InterviewData {
	data := dto.InterviewData{
		ID:            strconv.FormatInt(interview.PublicID, 10),
		ApplicationID: strconv.FormatInt(interview.ApplicationID, 10),
		UserID:        strconv.FormatInt(interview.UserID, 10),
		ScheduledAt:   interview.ScheduledAt,
		Status:        string(interview.Status),
		Outcome:       string(interview.Outcome),
		Notes:         interview.Notes,
		CreatedAt:     interview.CreatedAt,
	}
	if interview.AdminID != nil {
		data.AdminID = strconv.FormatInt(*interview.AdminID, 10)
	}
	return data
}

// isDuplicateKey 唯一索引冲突判定，Postgres 的错误文本里带 duplicate key
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if err == gorm.ErrDuplicatedKey {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key")
}
