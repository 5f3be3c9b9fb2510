package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// SaveLeaveRequest inserts or replaces a leave request
func (s *Store) SaveLeaveRequest(lr *LeaveRequestRecord) error {
	_, err := s.exec(`
		INSERT INTO leave_requests (id, employee_id, leave_type_id, status_id, requested_to,
			start_date, end_date, total_days, reason, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			leave_type_id = excluded.leave_type_id,
			status_id = excluded.status_id,
			requested_to = excluded.requested_to,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			total_days = excluded.total_days,
			reason = excluded.reason,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at
	`, lr.ID, lr.EmployeeID, lr.LeaveTypeID, lr.StatusID, lr.RequestedTo,
		lr.StartDate, lr.EndDate, lr.TotalDays, lr.Reason, lr.IsActive, lr.CreatedAt, lr.UpdatedAt)

	return err
}

// GetLeaveRequest retrieves a leave request by ID
func (s *Store) GetLeaveRequest(id string) (*LeaveRequestRecord, error) {
	row := s.queryRow(`
		SELECT id, employee_id, leave_type_id, status_id, requested_to,
			start_date, end_date, total_days, reason, is_active, created_at, updated_at
		FROM leave_requests WHERE id = ?
	`, id)

	var lr LeaveRequestRecord
	err := row.Scan(&lr.ID, &lr.EmployeeID, &lr.LeaveTypeID, &lr.StatusID, &lr.RequestedTo,
		&lr.StartDate, &lr.EndDate, &lr.TotalDays, &lr.Reason, &lr.IsActive, &lr.CreatedAt, &lr.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("leave request %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &lr, nil
}

// ListLeaveRequests returns leave requests, optionally filtered by employee
func (s *Store) ListLeaveRequests(employeeID string) ([]*LeaveRequestRecord, error) {
	query := `
		SELECT id, employee_id, leave_type_id, status_id, requested_to,
			start_date, end_date, total_days, reason, is_active, created_at, updated_at
		FROM leave_requests
	`
	var args []any
	if employeeID != "" {
		query += ` WHERE employee_id = ?`
		args = append(args, employeeID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*LeaveRequestRecord
	for rows.Next() {
		var lr LeaveRequestRecord
		err := rows.Scan(&lr.ID, &lr.EmployeeID, &lr.LeaveTypeID, &lr.StatusID, &lr.RequestedTo,
			&lr.StartDate, &lr.EndDate, &lr.TotalDays, &lr.Reason, &lr.IsActive, &lr.CreatedAt, &lr.UpdatedAt)
		if err != nil {
			return nil, err
		}
		requests = append(requests, &lr)
	}
	return requests, rows.Err()
}
