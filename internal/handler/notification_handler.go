package handler

import (
	"net/http"

	"techstock/internal/middleware"
	"techstock/internal/model"
	"techstock/pkg/database"
	"techstock/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListNotifications returns the latest 50 notifications for the user
func ListNotifications(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	var notifications []model.Notification
	result := database.GetDB().
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications)
	if result.Error != nil {
		log.Error("Failed to list notifications", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve notifications"})
	}

	return c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead flips the read flag on one notification
func MarkNotificationRead(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)
	id := c.Param("id")

	result := database.GetDB().
		Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if result.Error != nil {
		log.Error("Failed to mark notification read",
			zap.String("notification_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update notification"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Notification not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Notification marked as read"})
}

// MarkAllNotificationsRead flips the read flag on every unread notification
// for the user
func MarkAllNotificationsRead(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	result := database.GetDB().
		Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	if result.Error != nil {
		log.Error("Failed to mark notifications read", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update notifications"})
	}

	log.Info("Notifications marked read", zap.Int64("count", result.RowsAffected))
	return c.JSON(http.StatusOK, echo.Map{"updated": result.RowsAffected})
}
