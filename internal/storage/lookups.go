package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// SaveEmployee inserts or replaces an employee
func (s *Store) SaveEmployee(e *EmployeeRecord) error {
	_, err := s.exec(`
		INSERT INTO employees (id, name, email, phone, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			phone = excluded.phone,
			role = excluded.role
	`, e.ID, e.Name, e.Email, e.Phone, e.Role, e.CreatedAt)
	return err
}

// GetEmployee retrieves an employee by ID
func (s *Store) GetEmployee(id string) (*EmployeeRecord, error) {
	row := s.queryRow(`SELECT id, name, email, phone, role, created_at FROM employees WHERE id = ?`, id)

	var e EmployeeRecord
	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Role, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("employee %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &e, nil
}

// ListEmployees returns all employees
func (s *Store) ListEmployees() ([]*EmployeeRecord, error) {
	rows, err := s.query(`SELECT id, name, email, phone, role, created_at FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*EmployeeRecord
	for rows.Next() {
		var e EmployeeRecord
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Role, &e.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, &e)
	}
	return employees, rows.Err()
}

// SaveProject inserts or replaces a project
func (s *Store) SaveProject(p *ProjectRecord) error {
	_, err := s.exec(`
		INSERT INTO projects (id, project_name, project_code)
		VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			project_name = excluded.project_name,
			project_code = excluded.project_code
	`, p.ID, p.ProjectName, p.ProjectCode)
	return err
}

// GetProject retrieves a project by ID
func (s *Store) GetProject(id string) (*ProjectRecord, error) {
	row := s.queryRow(`SELECT id, project_name, project_code FROM projects WHERE id = ?`, id)

	var p ProjectRecord
	err := row.Scan(&p.ID, &p.ProjectName, &p.ProjectCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

// GetTaskStatusByName retrieves a task status by its display name
func (s *Store) GetTaskStatusByName(name string) (*LookupRecord, error) {
	return s.lookupByName("task_statuses", name)
}

// GetTaskStatus retrieves a task status by ID
func (s *Store) GetTaskStatus(id string) (*LookupRecord, error) {
	return s.lookupByID("task_statuses", id)
}

// GetTaskPriority retrieves a task priority by ID
func (s *Store) GetTaskPriority(id string) (*LookupRecord, error) {
	return s.lookupByID("task_priorities", id)
}

// GetRequestStatusByName retrieves a leave request status by its display name
func (s *Store) GetRequestStatusByName(name string) (*LookupRecord, error) {
	return s.lookupByName("request_statuses", name)
}

// GetRequestStatus retrieves a leave request status by ID
func (s *Store) GetRequestStatus(id string) (*LookupRecord, error) {
	return s.lookupByID("request_statuses", id)
}

func (s *Store) lookupByName(table, name string) (*LookupRecord, error) {
	row := s.queryRow(`SELECT id, name FROM `+table+` WHERE name = ?`, name)

	var rec LookupRecord
	if err := row.Scan(&rec.ID, &rec.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s %q: %w", table, name, ErrNotFound)
		}
		return nil, err
	}
	return &rec, nil
}

func (s *Store) lookupByID(table, id string) (*LookupRecord, error) {
	row := s.queryRow(`SELECT id, name FROM `+table+` WHERE id = ?`, id)

	var rec LookupRecord
	if err := row.Scan(&rec.ID, &rec.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s %s: %w", table, id, ErrNotFound)
		}
		return nil, err
	}
	return &rec, nil
}
