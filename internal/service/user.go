package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"Evermatch/internal/model"
	"Evermatch/internal/model/dto"
	"Evermatch/pkg/errors"
	"Evermatch/pkg/logger"
	"Evermatch/storage/database"
)

var (
	userService *UserService
	userOnce    sync.Once
)

func User() *UserService {
	userOnce.Do(func() {
		userService = &UserService{}
	})
	return userService
}

type UserService struct{}

// GetProfileByDevice 按设备会话取资料页
// 申请期的身份就是设备会话 ID，通过申请记录找到落库的会员
func (s *UserService) GetProfileByDevice(ctx context.Context, deviceID string) (*dto.ProfileData, error) {
	user, err := s.findByDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return profileData(user), nil
}

// UpdateProfileByDevice 资料编辑，审核通过前资料是冻结的
// Profile 字段合并进快照，不整体替换
func (s *UserService) UpdateProfileByDevice(ctx context.Context, deviceID string, req dto.UpdateProfileRequest) (*dto.ProfileData, error) {
	user, err := s.findByDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	if user.Status != model.UserStatusActive {
		return nil, errors.ProfileNotEditable
	}

	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Country != nil {
		updates["country"] = *req.Country
	}
	if len(req.Profile) > 0 {
		updates["profile"] = user.Profile.Merge(req.Profile)
	}

	if len(updates) > 0 {
		if err := database.DB().WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
			logger.Logger.Error("Failed to update profile",
				zap.Int64("user_id", user.PublicID),
				zap.Error(err),
			)
			return nil, err
		}
	}

	return profileData(user), nil
}

// ListUsers 管理后台会员列表，游标分页
func (s *UserService) ListUsers(ctx context.Context, query dto.UserListQuery) ([]dto.UserSummary, string, error) {
	limit := query.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	db := database.DB().WithContext(ctx).Model(&model.User{}).Order("id")
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.Cursor != "" {
		cursorID, err := strconv.ParseInt(query.Cursor, 10, 64)
		if err != nil {
			return nil, "", errors.InvalidUserID
		}
		db = db.Where("id > ?", cursorID)
	}

	var users []model.User
	if err := db.Limit(limit + 1).Find(&users).Error; err != nil {
		logger.Logger.Error("Failed to list users", zap.Error(err))
		return nil, "", err
	}

	nextCursor := ""
	if len(users) > limit {
		users = users[:limit]
		nextCursor = strconv.FormatInt(users[len(users)-1].ID, 10)
	}

	out := make([]dto.UserSummary, 0, len(users))
	for i := range users {
		u := &users[i]
		out = append(out, dto.UserSummary{
			ID:          strconv.FormatInt(u.PublicID, 10),
			Email:       u.Email,
			DisplayName: u.DisplayName,
			FullName:    u.FullName,
			Age:         u.Age,
			City:        u.City,
			Status:      string(u.Status),
			CreatedAt:   u.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nextCursor, nil
}

// GetUser 管理后台会员详情，按 public_id
func (s *UserService) GetUser(ctx context.Context, publicID int64) (*dto.ProfileData, error) {
	var user model.User
	err := database.DB().WithContext(ctx).Where("public_id = ?", publicID).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return profileData(&user), nil
}

// UpdateUserStatus 管理后台改会员状态（审核通过、停用等）
func (s *UserService) UpdateUserStatus(ctx context.Context, publicID int64, status model.UserStatus) error {
	if _, ok := model.StatusToStringMap[status]; !ok {
		return errors.InvalidUserID
	}

	result := database.DB().WithContext(ctx).
		Model(&model.User{}).
		Where("public_id = ?", publicID).
		Update("status", status)
	if result.Error != nil {
		logger.Logger.Error("Failed to update user status",
			zap.Int64("user_id", publicID),
			zap.Error(result.Error),
		)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrUserNotFound
	}

	logger.Logger.Info("User status updated",
		zap.Int64("user_id", publicID),
		zap.String("status", string(status)),
	)
	return nil
}

func (s *UserService) findByDevice(ctx context.Context, deviceID string) (*model.User, error) {
	db := database.DB().WithContext(ctx)

	var application model.Application
	err := db.Where("device_id = ?", deviceID).Order("id desc").First(&application).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	err = db.Where("public_id = ?", application.UserID).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func profileData(user *model.User) *dto.ProfileData {
	return &dto.ProfileData{
		ID:          strconv.FormatInt(user.PublicID, 10),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		FullName:    user.FullName,
		Age:         user.Age,
		Gender:      user.Gender,
		City:        user.City,
		Country:     user.Country,
		Status:      string(user.Status),
		Profile:     user.Profile,
	}
}
