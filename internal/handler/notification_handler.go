package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff)
	notifications := router.Group("/api/notifications")
	{
		notifications.GET("", staff, h.List)
		notifications.GET("/unread-count", staff, h.UnreadCount)
		notifications.PATCH("/:id/read", staff, h.MarkRead)
		notifications.PATCH("/read-all", staff, h.MarkAllRead)
		notifications.DELETE("/:id", staff, h.Delete)
		notifications.DELETE("", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.ClearAll)
	}
}

// List returns notifications, newest first
// @Summary      List notifications
// @Tags         notifications
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	page, limit := queryPage(c)
	notifications, total, err := h.notificationService.List(c.Request.Context(), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, listPayload("notifications", notifications, total, page, limit)))
}

// UnreadCount returns the number of unread notifications
// @Summary      Unread notification count
// @Tags         notifications
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationService.UnreadCount(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"count": count}))
}

// MarkRead flips one notification to read
// @Summary      Mark notification read
// @Description  Marks one notification as read, re-arming low-stock alerts for its item
// @Tags         notifications
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      int  true  "Notification ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	if err := h.notificationService.MarkRead(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"read": id}))
}

// MarkAllRead flips every notification to read
// @Summary      Mark all notifications read
// @Tags         notifications
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/notifications/read-all [patch]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"read": "all"}))
}

// Delete removes one notification
// @Summary      Delete notification
// @Tags         notifications
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      int  true  "Notification ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	if err := h.notificationService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": id}))
}

// ClearAll removes every notification
// @Summary      Clear notifications
// @Tags         notifications
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/notifications [delete]
func (h *NotificationHandler) ClearAll(c *gin.Context) {
	if err := h.notificationService.ClearAll(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": "all"}))
}
