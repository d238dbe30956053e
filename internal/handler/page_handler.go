package handler

import (
	"net/http"

	"go-gin-events/internal/view"

	"github.com/gin-gonic/gin"
)

type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Home)
	r.GET("/signin", h.Signin)
	r.GET("/healthz", h.Health)
}

func (h *PageHandler) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/events")
}

func (h *PageHandler) Signin(c *gin.Context) {
	render(c, http.StatusOK, view.TemplateSignin, gin.H{"Title": "Sign in"})
}

func (h *PageHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
