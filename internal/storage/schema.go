package storage

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		role TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		project_name TEXT NOT NULL,
		project_code TEXT
	);

	CREATE TABLE IF NOT EXISTS task_statuses (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS task_priorities (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS request_statuses (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		task_code TEXT,
		task_name TEXT NOT NULL,
		project_id TEXT NOT NULL,
		description TEXT,
		start_date DATETIME,
		due_date DATETIME,
		status_id TEXT,
		priority_id TEXT,
		assigned_to TEXT,
		created_by TEXT,
		feedback TEXT,
		req_lead_count TEXT,
		comp_lead_count TEXT,
		progress_details TEXT,
		reason_for_pending TEXT,
		work_logs TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		message TEXT NOT NULL,
		from_employee_id TEXT,
		to_employee_id TEXT NOT NULL,
		status TEXT NOT NULL,
		meta TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS leave_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		leave_type_id TEXT NOT NULL,
		status_id TEXT NOT NULL,
		requested_to TEXT NOT NULL,
		start_date DATETIME NOT NULL,
		end_date DATETIME NOT NULL,
		total_days REAL NOT NULL,
		reason TEXT,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
	CREATE INDEX IF NOT EXISTS idx_notifications_to ON notifications(to_employee_id);
	CREATE INDEX IF NOT EXISTS idx_leave_requests_employee ON leave_requests(employee_id);
`

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		role TEXT,
		created_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		project_name TEXT NOT NULL,
		project_code TEXT
	);

	CREATE TABLE IF NOT EXISTS task_statuses (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS task_priorities (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS request_statuses (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		task_code TEXT,
		task_name TEXT NOT NULL,
		project_id TEXT NOT NULL,
		description TEXT,
		start_date TIMESTAMPTZ,
		due_date TIMESTAMPTZ,
		status_id TEXT,
		priority_id TEXT,
		assigned_to TEXT,
		created_by TEXT,
		feedback TEXT,
		req_lead_count TEXT,
		comp_lead_count TEXT,
		progress_details TEXT,
		reason_for_pending TEXT,
		work_logs TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		message TEXT NOT NULL,
		from_employee_id TEXT,
		to_employee_id TEXT NOT NULL,
		status TEXT NOT NULL,
		meta TEXT,
		created_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS leave_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		leave_type_id TEXT NOT NULL,
		status_id TEXT NOT NULL,
		requested_to TEXT NOT NULL,
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ NOT NULL,
		total_days DOUBLE PRECISION NOT NULL,
		reason TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
	CREATE INDEX IF NOT EXISTS idx_notifications_to ON notifications(to_employee_id);
	CREATE INDEX IF NOT EXISTS idx_leave_requests_employee ON leave_requests(employee_id);
`

// Default lookup table rows seeded on migration
var (
	defaultTaskStatuses    = []string{"To Do", "In Progress", "Completed"}
	defaultTaskPriorities  = []string{"Low", "Medium", "High"}
	defaultRequestStatuses = []string{"Pending", "Approved", "Rejected"}
)

// Migrate creates the schema and seeds the lookup tables
func (s *Store) Migrate() error {
	schema := sqliteSchema
	if s.driver == DriverPostgres {
		schema = postgresSchema
	}
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	seed := map[string][]string{
		"task_statuses":    defaultTaskStatuses,
		"task_priorities":  defaultTaskPriorities,
		"request_statuses": defaultRequestStatuses,
	}
	for table, names := range seed {
		for _, name := range names {
			_, err := s.exec(
				"INSERT INTO "+table+" (id, name) VALUES (?, ?) ON CONFLICT (name) DO NOTHING",
				GenerateID(), name,
			)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
