package middleware

import (
	"errors"
	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// AuthMiddleware 只校验令牌，用户资料不回源查询
func AuthMiddleware(verifier *util.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			util.Error(c, http.StatusUnauthorized, "Missing bearer token")
			c.Abort()
			return
		}

		claims, err := verifier.Verify(raw)
		if err != nil {
			logger.Ctx(c.Request.Context()).Debug("Token rejected", zap.String("path", c.FullPath()), zap.Error(err))
			msg := "Invalid token"
			if errors.Is(err, util.ErrTokenExpired) {
				msg = "Token expired"
			}
			util.Error(c, http.StatusUnauthorized, msg)
			c.Abort()
			return
		}

		util.SetUser(c, claims)
		c.Next()
	}
}

// RoleMiddleware 管理员隐含拥有所有角色
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		switch {
		case user == nil:
			util.Unauthorized(c)
		case user.Role == model.Admin || slices.Contains(roles, user.Role):
			c.Next()
			return
		default:
			util.Forbidden(c)
		}
		c.Abort()
	}
}
