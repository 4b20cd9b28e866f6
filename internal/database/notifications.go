package database

import (
	"database/sql"
	"fmt"
	"time"

	"wardrobeiq/internal/models"

	"github.com/google/uuid"
)

func CreateNotification(db *sql.DB, userID int, notifType, title, message string, data map[string]interface{}) (*models.Notification, error) {
	if data == nil {
		data = map[string]interface{}{}
	}

	encoded, err := encodeJSON(data)
	if err != nil {
		return nil, err
	}

	notification := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		Data:      data,
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO notifications (id, user_id, type, title, message, data)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = db.Exec(query, notification.ID, userID, notifType, title, message, encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return notification, nil
}

// GetNotifications returns one page of a user's notifications plus the count
// of unread ones across all pages.
func GetNotifications(db *sql.DB, userID, page, limit int) ([]models.Notification, int, error) {
	var unread int
	if err := db.QueryRow(`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND read = FALSE`, userID).Scan(&unread); err != nil {
		return nil, 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	query := `
		SELECT id, user_id, type, title, message, data, read, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := db.Query(query, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var notification models.Notification
		var data string

		err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&notification.Type,
			&notification.Title,
			&notification.Message,
			&data,
			&notification.Read,
			&notification.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}

		if err := decodeJSON(data, &notification.Data); err != nil {
			return nil, 0, err
		}

		notifications = append(notifications, notification)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, unread, nil
}

func MarkNotificationRead(db *sql.DB, userID int, notificationID string) error {
	result, err := db.Exec(`UPDATE notifications SET read = TRUE WHERE id = ? AND user_id = ?`, notificationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func MarkAllNotificationsRead(db *sql.DB, userID int) error {
	_, err := db.Exec(`UPDATE notifications SET read = TRUE WHERE user_id = ? AND read = FALSE`, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func DeleteNotification(db *sql.DB, userID int, notificationID string) error {
	result, err := db.Exec(`DELETE FROM notifications WHERE id = ? AND user_id = ?`, notificationID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
