// Package middleware 提供 gin 的共用 middleware：存取日誌、錯誤頁、flash、登入狀態與 method override。
package middleware

import (
	"net/http"
	"time"

	"go-gin-events/internal/view"
	"go-gin-events/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger 每個請求一筆結構化日誌
func RequestLogger() gin.HandlerFunc {
	log := logger.WithComponent("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			log.Error("request", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// Recovery panic 時記錄並回傳錯誤頁
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.WithComponent("http").Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"))
		renderError(c)
	})
}

// ErrorBoundary handler 以 c.Error 回報且尚未寫出回應時，統一渲染 500 錯誤頁
func ErrorBoundary() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		logger.WithComponent("http").Error("unhandled error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(c.Errors.Last().Err))
		renderError(c)
	}
}

func renderError(c *gin.Context) {
	data := gin.H{
		"Title":   "Error",
		"Message": "Internal Server Error",
	}
	if user, ok := CurrentUser(c); ok {
		data["CurrentUser"] = user
	}
	c.HTML(http.StatusInternalServerError, view.TemplateError, data)
	c.Abort()
}
