package service

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"Evermatch/internal/cache"
	"Evermatch/internal/model"
	"Evermatch/internal/model/dto"
	"Evermatch/pkg/errors"
	"Evermatch/pkg/logger"
	"Evermatch/pkg/token"
	"Evermatch/storage/database"
	"Evermatch/utils"
)

var (
	adminService *AdminService
	adminOnce    sync.Once
)

func Admin() *AdminService {
	adminOnce.Do(func() {
		adminService = &AdminService{}
	})
	return adminService
}

type AdminService struct{}

// Login 管理员登录，口令以加盐 hash 核对
func (s *AdminService) Login(ctx context.Context, req dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	var admin model.Admin
	err := database.DB().WithContext(ctx).Where("email = ?", req.Email).First(&admin).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// 账号不存在和口令错误对外不可区分
			return nil, errors.InvalidCredentials
		}
		logger.Logger.Error("Failed to query admin", zap.Error(err))
		return nil, errors.InvalidCredentials
	}

	if admin.PasswordHash != utils.HashPassword(req.Password) {
		return nil, errors.InvalidCredentials
	}

	adminID := strconv.FormatInt(admin.ID, 10)
	accessToken, refreshToken, expiresIn, err := token.GenerateTokenPair(adminID, token.RoleAdmin)
	if err != nil {
		logger.Logger.Error("Failed to generate admin tokens",
			zap.String("admin_id", adminID),
			zap.Error(err),
		)
		return nil, errors.InvalidCredentials
	}

	if err := cache.SetRefreshToken(ctx, adminID, refreshToken); err != nil {
		logger.Logger.Warn("Failed to store admin refresh token in Redis",
			zap.String("admin_id", adminID),
			zap.Error(err),
		)
	}

	logger.Logger.Info("Admin logged in",
		zap.String("admin_id", adminID),
		zap.String("role", string(admin.Role)),
	)

	return &dto.AdminLoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		Admin:        adminData(&admin),
	}, nil
}

// CreateAdmin 新建后台账号，只有 superadmin 能调
func (s *AdminService) CreateAdmin(ctx context.Context, req dto.CreateAdminRequest) (*dto.AdminData, error) {
	if !utils.ValidateEmail(req.Email) {
		return nil, errors.InvalidCredentials
	}
	if !model.ValidAdminRole(model.AdminRole(req.Role)) {
		return nil, errors.AdminRoleInvalid
	}

	db := database.DB().WithContext(ctx)

	var count int64
	if err := db.Model(&model.Admin{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		logger.Logger.Error("Failed to check admin existence", zap.Error(err))
		return nil, err
	}
	if count > 0 {
		return nil, errors.AdminAlreadyExists
	}

	admin := &model.Admin{
		Email:        req.Email,
		Name:         req.Name,
		Role:         model.AdminRole(req.Role),
		PasswordHash: utils.HashPassword(req.Password),
	}
	if err := db.Create(admin).Error; err != nil {
		logger.Logger.Error("Failed to create admin", zap.Error(err))
		return nil, err
	}

	logger.Logger.Info("Admin created",
		zap.Int64("admin_id", admin.ID),
		zap.String("role", req.Role),
	)

	data := adminData(admin)
	return &data, nil
}

// ListAdmins 后台账号列表
func (s *AdminService) ListAdmins(ctx context.Context) ([]dto.AdminData, error) {
	var admins []model.Admin
	if err := database.DB().WithContext(ctx).Order("id").Find(&admins).Error; err != nil {
		logger.Logger.Error("Failed to list admins", zap.Error(err))
		return nil, err
	}

	out := make([]dto.AdminData, 0, len(admins))
	for i := range admins {
		out = append(out, adminData(&admins[i]))
	}
	return out, nil
}

// GetAdmin 按 ID 取后台账号
func (s *AdminService) GetAdmin(ctx context.Context, adminID int64) (*model.Admin, error) {
	var admin model.Admin
	err := database.DB().WithContext(ctx).First(&admin, adminID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.AdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func adminData(admin *model.Admin) dto.AdminData {
	return dto.AdminData{
		ID:    strconv.FormatInt(admin.ID, 10),
		Email: admin.Email,
		Name:  admin.Name,
		Role:  string(admin.Role),
	}
}
