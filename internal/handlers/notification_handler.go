// ejournal/internal/handlers/notification_handler.go

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ejournal/internal/middleware"
	"ejournal/models"
)

// notificationFilters ограничивает выборку адресатом и, при запросе,
// только непрочитанными. Общий scope для страницы и подсчета.
func notificationFilters(userID uint, unreadOnly bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("user_id = ?", userID)
		if unreadOnly {
			db = db.Where("is_read = false")
		}
		return db
	}
}

// ListNotifications returns the current user's notifications, newest first.
func (s *Server) ListNotifications(c *gin.Context) {
	userID := middleware.UserID(c)
	filters := notificationFilters(userID, c.Query("unread") == "true")

	var notifications []models.Notification
	if err := s.DB.Order("created_at DESC").Scopes(filters, Paginate(c)).Find(&notifications).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	if notifications == nil {
		notifications = make([]models.Notification, 0)
	}

	var totalRows int64
	if err := s.DB.Model(&models.Notification{}).Scopes(filters).Count(&totalRows).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, paginated(c, notifications, totalRows))
}

// CreateNotification stores a notification and pushes it to the recipient
// when online.
func (s *Server) CreateNotification(c *gin.Context) {
	var input models.NotificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Проверьте данные уведомления: "+err.Error())
		return
	}

	notification := models.Notification{
		UserID:  input.UserID,
		Title:   input.Title,
		Content: input.Content,
	}
	if err := s.DB.Create(&notification).Error; err != nil {
		s.dbError(c, err, "")
		return
	}

	s.Hub.Push(notification)
	c.JSON(http.StatusCreated, notification)
}

// MarkNotificationRead marks one of the current user's notifications read.
func (s *Server) MarkNotificationRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := middleware.UserID(c)

	var notification models.Notification
	if err := s.DB.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error; err != nil {
		s.dbError(c, err, "Уведомление не найдено")
		return
	}
	if !notification.IsRead {
		now := time.Now()
		notification.IsRead = true
		notification.ReadAt = &now
		if err := s.DB.Save(&notification).Error; err != nil {
			s.dbError(c, err, "")
			return
		}
	}
	c.JSON(http.StatusOK, notification)
}

// DeleteNotification removes one of the current user's notifications.
func (s *Server) DeleteNotification(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result := s.DB.Where("user_id = ?", middleware.UserID(c)).Delete(&models.Notification{}, id)
	if result.Error != nil {
		s.dbError(c, result.Error, "")
		return
	}
	if result.RowsAffected == 0 {
		fail(c, http.StatusNotFound, "Уведомление не найдено")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Уведомление удалено"})
}
