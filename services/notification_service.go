package services

import (
	"fmt"
	"html/template"
	"log"

	"gorm.io/gorm"

	"journal-review-api/config"
	"journal-review-api/models"
)

// NotificationService writes in-app notifications and mirrors them to email
// when SMTP is configured. Delivery is always best-effort: callers treat a
// returned error as a warning, never as a reason to abort their own work.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	if db == nil {
		db = config.DB
	}
	return &NotificationService{db: db}
}

func (s *NotificationService) Notify(userID uint, title, message, typ string) error {
	n := models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    typ,
	}
	if err := s.db.Create(&n).Error; err != nil {
		return err
	}

	s.mirrorEmail(userID, title, message)
	return nil
}

// NotifyMany fans a single message out to a deduplicated recipient set.
func (s *NotificationService) NotifyMany(userIDs []uint, title, message, typ string) error {
	seen := make(map[uint]bool, len(userIDs))
	var firstErr error
	for _, id := range userIDs {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		if err := s.Notify(id, title, message, typ); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *NotificationService) ListForUser(userID uint) ([]models.Notification, error) {
	var items []models.Notification
	if err := s.db.Where("user_id = ?", userID).
		Order("timestamp DESC").
		Find(&items).Error; err != nil {
		return nil, dependencyErr("fetch notifications", err)
	}
	return items, nil
}

// MarkRead flips the read flag. Scoped to the recipient so one user cannot
// touch another user's notifications.
func (s *NotificationService) MarkRead(id, userID uint) error {
	res := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return dependencyErr("mark notification as read", res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: "Notification"}
	}
	return nil
}

func (s *NotificationService) Delete(id, userID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Notification{})
	if res.Error != nil {
		return dependencyErr("delete notification", res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: "Notification"}
	}
	return nil
}

func (s *NotificationService) mirrorEmail(userID uint, title, message string) {
	if !config.MailerEnabled() {
		return
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil || user.Email == "" {
		return
	}

	go func() {
		html := buildNotificationEmailHTML(title, user.Name, message)
		if err := config.SendMail([]string{user.Email}, title, html); err != nil {
			log.Printf("notification email send failed (subject=%q to=%s): %v", title, user.Email, err)
		}
	}()
}

func buildNotificationEmailHTML(subject, recipientName, message string) string {
	escSubject := template.HTMLEscapeString(subject)
	escName := template.HTMLEscapeString(recipientName)
	escMessage := template.HTMLEscapeString(message)

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>%s</h2>
  <p>Dear %s,</p>
  <p>%s</p>
  <p style="color:#888; font-size:12px;">This is an automated message from the journal editorial system.</p>
</body>
</html>`, escSubject, escName, escMessage)
}
