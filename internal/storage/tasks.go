package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SaveTask inserts or replaces a task
func (s *Store) SaveTask(task *TaskRecord) error {
	assignedJSON, _ := json.Marshal(task.AssignedTo)
	progressJSON, _ := json.Marshal(task.ProgressDetails)
	reasonJSON, _ := json.Marshal(task.ReasonForPending)
	logsJSON, _ := json.Marshal(task.WorkLogs)

	_, err := s.exec(`
		INSERT INTO tasks (id, task_code, task_name, project_id, description, start_date, due_date,
			status_id, priority_id, assigned_to, created_by, feedback, req_lead_count, comp_lead_count,
			progress_details, reason_for_pending, work_logs, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			task_code = excluded.task_code,
			task_name = excluded.task_name,
			project_id = excluded.project_id,
			description = excluded.description,
			start_date = excluded.start_date,
			due_date = excluded.due_date,
			status_id = excluded.status_id,
			priority_id = excluded.priority_id,
			assigned_to = excluded.assigned_to,
			created_by = excluded.created_by,
			feedback = excluded.feedback,
			req_lead_count = excluded.req_lead_count,
			comp_lead_count = excluded.comp_lead_count,
			progress_details = excluded.progress_details,
			reason_for_pending = excluded.reason_for_pending,
			work_logs = excluded.work_logs,
			updated_at = excluded.updated_at
	`, task.ID, task.TaskCode, task.TaskName, task.ProjectID, task.Description,
		task.StartDate, task.DueDate, task.StatusID, task.PriorityID, string(assignedJSON),
		task.CreatedBy, task.Feedback, task.ReqLeadCount, task.CompLeadCount,
		string(progressJSON), string(reasonJSON), string(logsJSON), task.CreatedAt, task.UpdatedAt)

	return err
}

// GetTask retrieves a task by ID
func (s *Store) GetTask(id string) (*TaskRecord, error) {
	row := s.queryRow(`
		SELECT id, task_code, task_name, project_id, description, start_date, due_date,
			status_id, priority_id, assigned_to, created_by, feedback, req_lead_count, comp_lead_count,
			progress_details, reason_for_pending, work_logs, created_at, updated_at
		FROM tasks WHERE id = ?
	`, id)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return task, nil
}

// ListTasks returns tasks, optionally filtered to those assigned to the
// given employee
func (s *Store) ListTasks(assignedTo string) ([]*TaskRecord, error) {
	query := `
		SELECT id, task_code, task_name, project_id, description, start_date, due_date,
			status_id, priority_id, assigned_to, created_by, feedback, req_lead_count, comp_lead_count,
			progress_details, reason_for_pending, work_logs, created_at, updated_at
		FROM tasks
	`
	var args []any
	if assignedTo != "" {
		query += ` WHERE assigned_to LIKE ?`
		args = append(args, `%"`+assignedTo+`"%`)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*TaskRecord
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// DeleteTask removes a task by ID
func (s *Store) DeleteTask(id string) error {
	res, err := s.exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*TaskRecord, error) {
	var task TaskRecord
	var assignedJSON, progressJSON, reasonJSON, logsJSON string
	var startDate, dueDate sql.NullTime

	err := row.Scan(&task.ID, &task.TaskCode, &task.TaskName, &task.ProjectID, &task.Description,
		&startDate, &dueDate, &task.StatusID, &task.PriorityID, &assignedJSON,
		&task.CreatedBy, &task.Feedback, &task.ReqLeadCount, &task.CompLeadCount,
		&progressJSON, &reasonJSON, &logsJSON, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if startDate.Valid {
		t := startDate.Time
		task.StartDate = &t
	}
	if dueDate.Valid {
		t := dueDate.Time
		task.DueDate = &t
	}
	json.Unmarshal([]byte(assignedJSON), &task.AssignedTo)
	json.Unmarshal([]byte(progressJSON), &task.ProgressDetails)
	json.Unmarshal([]byte(reasonJSON), &task.ReasonForPending)
	json.Unmarshal([]byte(logsJSON), &task.WorkLogs)

	return &task, nil
}
