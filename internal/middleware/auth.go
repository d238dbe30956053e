package middleware

import (
	"errors"
	"net/http"
	"strings"

	"go-gin-events/internal/auth"
	"go-gin-events/internal/model"
	"go-gin-events/internal/repository"
	apperrors "go-gin-events/pkg/app_errors"
	"go-gin-events/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const currentUserKey = "current_user"

// Authenticate 從 cookie 或 Authorization: Bearer 取 token 並載入使用者；失敗時視為未登入，不中斷請求
func Authenticate(tokens *auth.TokenManager, users repository.UserRepository, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(cookieName)
		}
		if token == "" {
			c.Next()
			return
		}

		userID, err := tokens.Parse(token)
		if err != nil {
			c.Next()
			return
		}

		user, err := users.FindByID(c, userID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrUserNotFound) {
				logger.WithComponent("auth").Error("load current user failed", zap.String("user_id", userID.String()), zap.Error(err))
			}
			c.Next()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func bearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// CurrentUser 取得已登入的使用者
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok && user != nil
}

// RequireAuth 未登入時 flash 提示並導向 /signin
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); ok {
			c.Next()
			return
		}

		logger.WithComponent("auth").Debug("Guarded route without user",
			zap.String("path", c.Request.URL.Path),
			zap.Error(apperrors.ErrAuthenticationRequired))

		if session := Flash(c); session != nil {
			if err := session.Danger(c, "Please signin first."); err != nil {
				logger.WithComponent("auth").Warn("add flash failed", zap.Error(err))
			}
		}
		c.Redirect(http.StatusSeeOther, "/signin")
		c.Abort()
	}
}
