package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"journal-review-api/services"
)

// GetNotifications lists the authenticated user's notifications, newest first.
func GetNotifications(c *gin.Context) {
	userID := currentUserID(c)

	notifications, err := services.NewNotificationService(nil).ListForUser(userID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"notifications": notifications})
}

// MarkNotificationRead marks one of the user's notifications as read.
func MarkNotificationRead(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid notification id."})
		return
	}

	if err := services.NewNotificationService(nil).MarkRead(id, currentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{})
}

// DeleteNotification removes one of the user's notifications.
func DeleteNotification(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid notification id."})
		return
	}

	if err := services.NewNotificationService(nil).Delete(id, currentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{})
}

func currentUserID(c *gin.Context) uint {
	if raw, exists := c.Get("userID"); exists {
		if id, okCast := raw.(uint); okCast {
			return id
		}
	}
	return 0
}
