package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("not found")

// Store handles relational persistence for the HRM backend.
// It runs on SQLite by default and on Postgres via the pgx stdlib driver.
type Store struct {
	db     *sql.DB
	driver string
}

// WorkLog is a timed interval on a task. EndTime and HoursWorked are set
// when the interval is closed by a Pause or Complete transition.
type WorkLog struct {
	EmployeeID     string     `json:"employeeId"`
	StartTime      time.Time  `json:"startTime"`
	EndTime        *time.Time `json:"endTime,omitempty"`
	HoursWorked    *float64   `json:"hoursWorked,omitempty"`
	LogDescription string     `json:"logDescription,omitempty"`
}

// TaskRecord represents a task in the store. Slice fields are stored as
// JSON columns.
type TaskRecord struct {
	ID               string     `json:"id"`
	TaskCode         string     `json:"taskCode,omitempty"`
	TaskName         string     `json:"taskName"`
	ProjectID        string     `json:"projectId"`
	Description      string     `json:"description,omitempty"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	DueDate          *time.Time `json:"dueDate,omitempty"`
	StatusID         string     `json:"taskStatusId,omitempty"`
	PriorityID       string     `json:"taskPriorityId,omitempty"`
	AssignedTo       []string   `json:"assignedTo"`
	CreatedBy        string     `json:"createdBy,omitempty"`
	Feedback         string     `json:"feedback,omitempty"`
	ReqLeadCount     string     `json:"reqLeadCount,omitempty"`
	CompLeadCount    string     `json:"compLeadCount,omitempty"`
	ProgressDetails  []string   `json:"progressDetails,omitempty"`
	ReasonForPending []string   `json:"reasonForPending,omitempty"`
	WorkLogs         []WorkLog  `json:"workLogs,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// EmployeeRecord represents an employee
type EmployeeRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProjectRecord represents a project
type ProjectRecord struct {
	ID          string `json:"id"`
	ProjectName string `json:"projectName"`
	ProjectCode string `json:"projectCode,omitempty"`
}

// LookupRecord is a name/id pair used for task statuses, task priorities
// and leave request statuses.
type LookupRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NotificationRecord represents a persisted notification
type NotificationRecord struct {
	ID             string         `json:"id"`
	Type           string         `json:"type"`
	Message        string         `json:"message"`
	FromEmployeeID string         `json:"fromEmployeeId"`
	ToEmployeeID   string         `json:"toEmployeeId"`
	Status         string         `json:"status"`
	Meta           map[string]any `json:"meta,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// LeaveRequestRecord represents a leave request
type LeaveRequestRecord struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	LeaveTypeID string    `json:"leaveTypeId"`
	StatusID    string    `json:"requestStatusId"`
	RequestedTo string    `json:"requestedTo"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	TotalDays   float64   `json:"totalDays"`
	Reason      string    `json:"reason,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GenerateID generates a unique record identifier
func GenerateID() string {
	return uuid.NewString()
}

// Open opens a store using the given driver and DSN. For sqlite3 the DSN
// is a file path; parent directories are created as needed.
func Open(driver, dsn string) (*Store, error) {
	switch driver {
	case DriverSQLite:
		if strings.HasPrefix(dsn, "~") {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			dsn = filepath.Join(home, dsn[1:])
		}
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, err
		}
		dsn += "?_fk=1"
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, driver: driver}
	if err := store.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind converts ? placeholders to $N for the Postgres driver
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) exec(query string, args ...any) (sql.Result, error) {
	return s.db.Exec(s.rebind(query), args...)
}

func (s *Store) queryRow(query string, args ...any) *sql.Row {
	return s.db.QueryRow(s.rebind(query), args...)
}

func (s *Store) query(query string, args ...any) (*sql.Rows, error) {
	return s.db.Query(s.rebind(query), args...)
}
