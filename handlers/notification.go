package handlers

import (
	"net/http"

	"portflow/services/notification"
	"portflow/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes the in-app notification endpoints.
type NotificationHandler struct {
	Notifs notification.NotificationService
}

func NewNotificationHandler(notifs notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Notifs: notifs}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	notifications, err := h.Notifs.ListNotifications(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, notifications)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.Notifs.UnreadCount(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, gin.H{"unread": count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var input struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if err := h.Notifs.MarkRead(c.Request.Context(), c.GetString("userID"), input.IDs); err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, gin.H{"marked": len(input.IDs)})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.Notifs.MarkAllRead(c.Request.Context(), c.GetString("userID")); err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, gin.H{"marked": "all"})
}
