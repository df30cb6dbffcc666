package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/campushub/internal/app/models/dto"
	"github.com/yigit/campushub/internal/app/services"
	"github.com/yigit/campushub/internal/middleware"
	"github.com/yigit/campushub/internal/pkg/helpers"
)

// NotificationController serves the authenticated user's notifications
type NotificationController struct {
	notificationService services.NotificationService
	defaultLimit        int
	logger              zerolog.Logger
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService, defaultLimit int, logger zerolog.Logger) *NotificationController {
	if defaultLimit <= 0 {
		defaultLimit = services.DefaultNotificationLimit
	}
	return &NotificationController{
		notificationService: notificationService,
		defaultLimit:        defaultLimit,
		logger:              logger,
	}
}

// ListNotifications returns the newest notifications
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum notifications (default 30, max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.NotificationListResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /notifications [get]
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	limit := helpers.ParseLimit(ctx, c.defaultLimit, services.MaxNotificationLimit)
	notifications, err := c.notificationService.ListForUser(ctx.Request.Context(), userID, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NotificationListResponse{
		Notifications: notifications,
		Count:         len(notifications),
	}))
}

// MarkAllRead marks every notification of the user as read
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MarkReadResponse}
// @Router /notifications/read-all [patch]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	updated, err := c.notificationService.MarkAllRead(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MarkReadResponse{Updated: updated}))
}

// MarkOneRead marks a single notification as read
// @Summary Mark one notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed id"
// @Failure 404 {object} dto.ErrorResponse "Not found or not yours"
// @Router /notifications/{id}/read [patch]
func (c *NotificationController) MarkOneRead(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	if err := c.notificationService.MarkOneRead(ctx.Request.Context(), ctx.Param("id"), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Notification marked as read"))
}

// UnreadCount reports how many notifications are unread
func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	unread, err := c.notificationService.CountUnread(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UnreadCountResponse{Unread: unread}))
}
