package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	NotificationService *service.NotificationService
}

func NewNotificationController(notificationService *service.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// @Summary 我的通知
// @Tags 通知
// @Produce json
// @Security ApiKeyAuth
// @Param unread query bool false "只看未读"
// @Success 200 {object} util.Response{data=[]model.Notification}
// @Router /notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	unreadOnly := ctx.Query("unread") == "true"
	notifications, err := c.NotificationService.List(ctx.Request.Context(), user.UserID, unreadOnly)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, notifications)
}

// @Summary 标记通知已读
// @Tags 通知
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "通知ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /notifications/{id}/read [patch]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	if err := c.NotificationService.MarkRead(ctx.Request.Context(), user.UserID, id); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "Notification marked as read"})
}
