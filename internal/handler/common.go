package handler

import (
	"net/http"
	"net/url"

	"go-gin-events/internal/flash"
	"go-gin-events/internal/middleware"
	apperrors "go-gin-events/pkg/app_errors"
	"go-gin-events/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const fallbackRedirect = "/events"

func BindForm(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBind(obj); err != nil {
		flashDanger(c, "Invalid request format")
		redirectBack(c)
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		flashDanger(c, "Invalid request format")
		redirectBack(c)
		return err
	}
	return nil
}

// parseID 解析路徑上的 :id
func parseID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidID
	}
	return id, nil
}

// render 補上登入者與 flash 訊息後渲染頁面
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if user, ok := middleware.CurrentUser(c); ok {
		data["CurrentUser"] = user
	}
	if session := middleware.Flash(c); session != nil {
		messages, err := session.Pop(c)
		if err != nil {
			logger.WithComponent("handler").Warn("pop flash failed", zap.Error(err))
		}
		data["Flashes"] = messages
	}
	c.HTML(status, name, data)
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// redirectBack 回到 Referer，只接受同站的路徑
func redirectBack(c *gin.Context) {
	redirect(c, backLocation(c))
}

// backLocation GET 失敗一律回列表，否則 Referer 指向同一頁時會無限導向
func backLocation(c *gin.Context) string {
	if c.Request.Method == http.MethodGet {
		return fallbackRedirect
	}
	referer := c.GetHeader("Referer")
	if referer == "" {
		return fallbackRedirect
	}
	u, err := url.Parse(referer)
	if err != nil || (u.Host != "" && u.Host != c.Request.Host) || u.Path == "" {
		return fallbackRedirect
	}
	if u.Path == c.Request.URL.Path {
		return fallbackRedirect
	}
	return u.RequestURI()
}

func flashSuccess(c *gin.Context, text string) {
	addFlash(c, flash.KindSuccess, text)
}

func flashDanger(c *gin.Context, text string) {
	addFlash(c, flash.KindDanger, text)
}

func addFlash(c *gin.Context, kind flash.Kind, text string) {
	session := middleware.Flash(c)
	if session == nil {
		return
	}
	var err error
	if kind == flash.KindSuccess {
		err = session.Success(c, text)
	} else {
		err = session.Danger(c, text)
	}
	if err != nil {
		logger.WithComponent("handler").Warn("add flash failed", zap.String("text", text), zap.Error(err))
	}
}
