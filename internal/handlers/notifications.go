package handlers

import (
	"database/sql"
	"net/http"

	"wardrobeiq/internal/database"

	"github.com/gin-gonic/gin"
)

func handleGetNotifications(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), 20)

	notifications, unread, err := database.GetNotifications(db, userID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unreadCount":   unread,
	})
}

func handleMarkNotificationRead(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	if err := database.MarkNotificationRead(db, userID, c.Param("id")); err != nil {
		respondError(c, err, "notification not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}

func handleMarkAllNotificationsRead(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	if err := database.MarkAllNotificationsRead(db, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "all notifications marked as read"})
}

func handleDeleteNotification(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	if err := database.DeleteNotification(db, userID, c.Param("id")); err != nil {
		respondError(c, err, "notification not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification deleted"})
}
