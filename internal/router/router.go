// Package router 組裝 gin engine：middleware、模板與各 handler 的路由。
package router

import (
	"net/http"

	"go-gin-events/config"
	"go-gin-events/internal/auth"
	"go-gin-events/internal/flash"
	"go-gin-events/internal/handler"
	"go-gin-events/internal/middleware"
	"go-gin-events/internal/realtime"
	"go-gin-events/internal/repository"
	"go-gin-events/internal/service"
	"go-gin-events/internal/view"

	"github.com/gin-gonic/gin"
)

type Dependencies struct {
	Config       *config.Config
	EventService service.EventService
	Users        repository.UserRepository
	Tokens       *auth.TokenManager
	FlashStore   flash.Store
	Hub          *realtime.Hub
}

// NewEngine 建立 gin engine，不含 method override
func NewEngine(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(view.MustParse())

	r.Use(
		middleware.RequestLogger(),
		middleware.Recovery(),
		middleware.ErrorBoundary(),
		middleware.FlashSession(deps.FlashStore, deps.Config.Flash.CookieName, deps.Config.Flash.TTL),
		middleware.Authenticate(deps.Tokens, deps.Users, deps.Config.Auth.CookieName),
	)

	handler.NewPageHandler().RegisterRoutes(r)
	handler.NewEventHandler(deps.EventService).RegisterRoutes(r)
	handler.NewSocketHandler(deps.Hub, deps.Config.Server.AllowedOrigins).RegisterRoutes(r)

	return r
}

// New 回傳給 http.Server 使用的 handler
func New(deps Dependencies) http.Handler {
	return middleware.MethodOverride(NewEngine(deps))
}
