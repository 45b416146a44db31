package middleware

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/jwt"

	"Evermatch/pkg/errors"
	"Evermatch/pkg/response"
	"Evermatch/pkg/token"
)

const (
	IdentityKey = token.IdentityKey
	RoleKey     = token.RoleKey
)

var (
	authMiddleware *jwt.HertzJWTMiddleware
)

func initAuthMiddleware() error {
	// 使用 token 包中共享的生成器
	sharedGenerator := token.GetGenerator()
	if sharedGenerator == nil {
		return fmt.Errorf("token generator not initialized, call token.Init() first")
	}

	// 基于共享生成器创建 middleware，补上 HTTP 侧的配置
	authMiddleware = &jwt.HertzJWTMiddleware{
		Realm:       "Evermatch API",
		Key:         sharedGenerator.Key,
		Timeout:     sharedGenerator.Timeout,
		MaxRefresh:  sharedGenerator.MaxRefresh,
		IdentityKey: sharedGenerator.IdentityKey,
		TimeFunc:    sharedGenerator.TimeFunc,

		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			claims := jwt.ExtractClaims(ctx, c)
			uid, ok := claims[IdentityKey].(string)
			if !ok {
				if uidFloat, ok := claims[IdentityKey].(float64); ok {
					uid = fmt.Sprintf("%.0f", uidFloat)
				} else {
					return nil
				}
			}

			// 角色一并塞进请求上下文，admin 守卫要用
			if role, ok := claims[RoleKey].(string); ok {
				c.Set(RoleKey, role)
			}
			return uid
		},

		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			c.JSON(code, map[string]interface{}{
				"error": map[string]interface{}{
					"code":    "UNAUTHORIZED",
					"message": message,
				},
			})
		},

		TokenLookup:   "header: Authorization, query: token, cookie: jwt",
		TokenHeadName: "Bearer",
	}

	return nil
}

func AuthMiddleware() app.HandlerFunc {
	if authMiddleware == nil {
		panic("AuthMiddleware not initialized, call Init() first")
	}
	return authMiddleware.MiddlewareFunc()
}

// AdminOnlyMiddleware 管理后台守卫，要求 token 里的角色是 admin
// 必须排在 AuthMiddleware 之后
func AdminOnlyMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if GetRole(ctx, c) != token.RoleAdmin {
			response.Error(ctx, c, errors.Unauthorized)
			c.Abort()
			return
		}
		c.Next(ctx)
	}
}

// GetUserID 从请求上下文中获取会话主体（申请者是设备会话 ID，管理员是账号 ID）
func GetUserID(ctx context.Context, c *app.RequestContext) (string, bool) {
	userID, exists := c.Get(IdentityKey)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	if !ok {
		return "", false
	}

	return id, true
}

// GetRole 从请求上下文中获取会话角色
func GetRole(ctx context.Context, c *app.RequestContext) string {
	role, exists := c.Get(RoleKey)
	if !exists {
		return ""
	}
	r, _ := role.(string)
	return r
}
