package models

import "time"

// Notification types shown to the recipient.
const (
	NotificationTypeSuccess = "success"
	NotificationTypeInfo    = "info"
	NotificationTypeError   = "error"
)

type Notification struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	UserID    uint      `gorm:"column:user_id;index" json:"user_id"`
	Title     string    `gorm:"column:title" json:"title"`
	Message   string    `gorm:"column:message;type:text" json:"message"`
	Type      string    `gorm:"column:type" json:"type"`
	Read      bool      `gorm:"column:read" json:"read"`
	Timestamp time.Time `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`
}

func (Notification) TableName() string { return "notifications" }
