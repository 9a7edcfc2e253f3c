package controller

import (
	"errors"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/service"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	notificationService *service.NotificationService
}

func NewNotificationController(notificationService *service.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// List godoc
// @Summary List recent notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/notifications [get]
func (ctrl *NotificationController) List(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	notifications, err := ctrl.notificationService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, notifications)
}

// UnreadCount godoc
// @Summary Get the number of unread notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/notifications/unread-count [get]
func (ctrl *NotificationController) UnreadCount(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	count, err := ctrl.notificationService.UnreadCount(claims.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"count": count})
}

// MarkRead godoc
// @Summary Mark one notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} util.Response
// @Router /api/notifications/{id}/read [post]
func (ctrl *NotificationController) MarkRead(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if err := ctrl.notificationService.MarkRead(c.Param("id"), claims.UserID); err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, nil)
}

// MarkAllRead godoc
// @Summary Mark every notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/notifications/read-all [post]
func (ctrl *NotificationController) MarkAllRead(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if err := ctrl.notificationService.MarkAllRead(claims.UserID); err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, nil)
}
