package handler

import (
	"errors"
	"net/http"

	"go-gin-events/internal/middleware"
	"go-gin-events/internal/model"
	"go-gin-events/internal/service"
	"go-gin-events/internal/view"
	apperrors "go-gin-events/pkg/app_errors"
	"go-gin-events/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	requireAuth := middleware.RequireAuth()

	router := r.Group("/events")
	{
		router.GET("", h.List)
		router.GET("/new", requireAuth, h.New)
		router.GET("/:id/edit", requireAuth, h.Edit)
		router.GET("/:id", h.Show)
		router.POST("", requireAuth, h.Create)
		router.PUT("/:id", requireAuth, h.Update)
		router.DELETE("/:id", requireAuth, h.Delete)
		router.POST("/:id/joins", requireAuth, h.Join)
	}
}

func (h *EventHandler) List(c *gin.Context) {
	var query model.EventListQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}
	params := query.Params()

	page, err := h.service.List(c, params)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	render(c, http.StatusOK, view.TemplateEventIndex, gin.H{
		"Title": "Events",
		"Page":  page,
		"Term":  params.Term,
	})
}

func (h *EventHandler) New(c *gin.Context) {
	render(c, http.StatusOK, view.TemplateEventNew, gin.H{
		"Title":  "New event",
		"Form":   model.EventForm{},
		"Action": "/events",
	})
}

func (h *EventHandler) Edit(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err, "Edit")
		return
	}
	event, err := h.service.GetByID(c, id)
	if err != nil {
		h.handleError(c, err, "Edit")
		return
	}
	render(c, http.StatusOK, view.TemplateEventEdit, gin.H{
		"Title":  "Edit " + event.Title,
		"Form":   model.EventFormFrom(event),
		"Action": event.URL(),
		"Method": http.MethodPut,
	})
}

func (h *EventHandler) Show(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err, "Show")
		return
	}
	detail, err := h.service.View(c, id)
	if err != nil {
		h.handleError(c, err, "Show")
		return
	}
	render(c, http.StatusOK, view.TemplateEventShow, gin.H{
		"Title": detail.Event.Title,
		"Event": detail.Event,
		"Joins": detail.Joins,
	})
}

func (h *EventHandler) Create(c *gin.Context) {
	var form model.EventForm
	if err := BindForm(c, &form); err != nil {
		return
	}
	user, _ := middleware.CurrentUser(c)

	if _, err := h.service.Create(c, user.ID, form); err != nil {
		h.handleError(c, err, "Create")
		return
	}
	flashSuccess(c, "Successfully posted")
	redirect(c, "/events")
}

func (h *EventHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err, "Update")
		return
	}
	var form model.EventForm
	if err := BindForm(c, &form); err != nil {
		return
	}

	if _, err := h.service.Update(c, id, form); err != nil {
		h.handleError(c, err, "Update")
		return
	}
	flashSuccess(c, "Successfully updated")
	redirect(c, "/events")
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err, "Delete")
		return
	}
	if err := h.service.Delete(c, id); err != nil {
		h.handleError(c, err, "Delete")
		return
	}
	flashSuccess(c, "Successfully deleted")
	redirect(c, "/events")
}

func (h *EventHandler) Join(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.handleError(c, err, "Join")
		return
	}
	var form model.JoinForm
	if err := BindForm(c, &form); err != nil {
		return
	}
	user, _ := middleware.CurrentUser(c)

	join, err := h.service.Join(c, id, user.ID, form.Content)
	if err != nil {
		h.handleError(c, err, "Join")
		return
	}
	flashSuccess(c, "Successfully joined")
	redirect(c, join.URL())
}

// handleError 可預期的錯誤 flash 後導回上一頁，其餘交給 ErrorBoundary
func (h *EventHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	var validationErr *apperrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		log.Info("Validation failed")
		flashDanger(c, validationErr.Message)
		redirectBack(c)
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		flashDanger(c, "Not exist event")
		redirectBack(c)
	case errors.Is(err, apperrors.ErrInvalidID):
		log.Warn("Invalid id")
		flashDanger(c, "Invalid id")
		redirectBack(c)
	default:
		_ = c.Error(err)
	}
}
