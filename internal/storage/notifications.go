package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Notification status values
const (
	NotificationUnseen = "unseen"
	NotificationSeen   = "seen"
)

// SaveNotification persists a notification record
func (s *Store) SaveNotification(n *NotificationRecord) error {
	metaJSON, _ := json.Marshal(n.Meta)

	_, err := s.exec(`
		INSERT INTO notifications (id, type, message, from_employee_id, to_employee_id, status, meta, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, n.ID, n.Type, n.Message, n.FromEmployeeID, n.ToEmployeeID, n.Status, string(metaJSON), n.CreatedAt)

	return err
}

// ListNotifications returns notifications addressed to an employee, most
// recent first
func (s *Store) ListNotifications(toEmployeeID string) ([]*NotificationRecord, error) {
	rows, err := s.query(`
		SELECT id, type, message, from_employee_id, to_employee_id, status, meta, created_at
		FROM notifications
		WHERE to_employee_id = ?
		ORDER BY created_at DESC
	`, toEmployeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*NotificationRecord
	for rows.Next() {
		var n NotificationRecord
		var metaJSON string
		err := rows.Scan(&n.ID, &n.Type, &n.Message, &n.FromEmployeeID, &n.ToEmployeeID, &n.Status, &metaJSON, &n.CreatedAt)
		if err != nil {
			return nil, err
		}
		json.Unmarshal([]byte(metaJSON), &n.Meta)
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

// MarkNotificationSeen flips a notification's status to seen
func (s *Store) MarkNotificationSeen(id string) error {
	res, err := s.exec(`UPDATE notifications SET status = ? WHERE id = ?`, NotificationSeen, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("notification %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetNotification retrieves a notification by ID
func (s *Store) GetNotification(id string) (*NotificationRecord, error) {
	row := s.queryRow(`
		SELECT id, type, message, from_employee_id, to_employee_id, status, meta, created_at
		FROM notifications WHERE id = ?
	`, id)

	var n NotificationRecord
	var metaJSON string
	err := row.Scan(&n.ID, &n.Type, &n.Message, &n.FromEmployeeID, &n.ToEmployeeID, &n.Status, &metaJSON, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("notification %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	json.Unmarshal([]byte(metaJSON), &n.Meta)
	return &n, nil
}
