// ejournal/models/notification.go

package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification is a per-user message shown in the bell menu and pushed
// over the websocket hub when the user is online.
type Notification struct {
	gorm.Model
	UserID  uint       `json:"userId" gorm:"not null;index"`
	Title   string     `json:"title" gorm:"not null"`
	Content string     `json:"content"`
	IsRead  bool       `json:"isRead" gorm:"default:false"`
	ReadAt  *time.Time `json:"readAt"`
}

// NotificationInput binds a create request.
type NotificationInput struct {
	UserID  uint   `json:"userId" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}
