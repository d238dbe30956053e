package handler

import (
	"go-gin-events/internal/middleware"
	"go-gin-events/internal/realtime"
	"go-gin-events/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type SocketHandler struct {
	hub      *realtime.Hub
	upgrader *websocket.Upgrader
}

func NewSocketHandler(hub *realtime.Hub, allowedOrigins []string) *SocketHandler {
	return &SocketHandler{
		hub:      hub,
		upgrader: realtime.NewUpgrader(allowedOrigins),
	}
}

func (h *SocketHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/socket", middleware.RequireAuth(), h.Connect)
}

// Connect 升級成 websocket，以登入者 id 註冊到 hub
func (h *SocketHandler) Connect(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 失敗時已回應錯誤
		logger.WithComponent("handler").Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := realtime.NewClient(conn, h.hub, user.ID, c.ClientIP())
	if err := h.hub.Register(client); err != nil {
		logger.WithComponent("handler").Warn("register websocket client failed", zap.Error(err))
		conn.Close()
	}
}
