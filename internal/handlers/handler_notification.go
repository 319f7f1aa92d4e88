package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finovabs/backoffice_app/internal/core/ports/services"
	"github.com/finovabs/backoffice_app/internal/dto"
	"github.com/finovabs/backoffice_app/internal/middleware"
)

// notificationHandler serves the authenticated user's notification inbox.
type notificationHandler struct {
	notifierService portssvc.NotifierSvcFacade
}

// newNotificationHandler creates a new notificationHandler.
func newNotificationHandler(ns portssvc.NotifierSvcFacade) *notificationHandler {
	return &notificationHandler{notifierService: ns}
}

// registerNotificationRoutes registers routes related to notifications.
func registerNotificationRoutes(rg *gin.RouterGroup, notifierService portssvc.NotifierSvcFacade) {
	h := newNotificationHandler(notifierService)

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.POST("/:notificationID/read", h.markRead)
	}
}

// listNotifications godoc
// @Summary List notifications
// @Description Retrieves the authenticated user's notifications, newest first
// @Tags notifications
// @Produce  json
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   offset query int false "Page offset"
// @Success 200 {array} dto.NotificationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	notifications, err := h.notifierService.ListNotifications(c.Request.Context(), userID, limit, offset)
	if err != nil {
		logger.Error("Failed to list notifications", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list notifications"})
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationResponses(notifications))
}

// markRead godoc
// @Summary Mark a notification as read
// @Description Flips the read flag on one of the authenticated user's notifications
// @Tags notifications
// @Produce  json
// @Param   notificationID path string true "Notification ID"
// @Success 204
// @Failure 404 {object} map[string]string "Notification not found"
// @Security BearerAuth
// @Router /notifications/{notificationID}/read [post]
func (h *notificationHandler) markRead(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	notificationID := c.Param("notificationID")
	if err := h.notifierService.MarkRead(c.Request.Context(), notificationID, userID); err != nil {
		respondApprovalError(c, "Failed to mark notification read", err)
		return
	}

	c.Status(http.StatusNoContent)
}
