package task

import (
	"context"

	"github.com/EethalTeam/eethal-hrm-node/internal/storage"
)

// Store is the persistence surface the engine needs.
// Implementations: storage.Store (SQLite or Postgres)
type Store interface {
	GetTask(id string) (*storage.TaskRecord, error)
	SaveTask(task *storage.TaskRecord) error
	GetEmployee(id string) (*storage.EmployeeRecord, error)
}

// Notifier delivers task notifications. Delivery is best-effort for
// assignments; the fan-out creator records failures instead of aborting.
// Implementations: notify.Notifier
type Notifier interface {
	// NotifyAssignment tells an assignee about a newly created task
	// (templated message + persisted notification + realtime push).
	NotifyAssignment(ctx context.Context, t *storage.TaskRecord, assignee, creator *storage.EmployeeRecord) error

	// NotifyCompletion tells the task creator that the task was completed.
	NotifyCompletion(ctx context.Context, t *storage.TaskRecord, assigneeName, feedback string) error
}

// StatusTable is the injected status lookup for the three lifecycle states.
// Built from the store's task_statuses table at startup.
type StatusTable struct {
	ToDo       storage.LookupRecord
	InProgress storage.LookupRecord
	Completed  storage.LookupRecord
}

type statusSource interface {
	GetTaskStatusByName(name string) (*storage.LookupRecord, error)
}

// LoadStatusTable builds a StatusTable from the store's lookup rows
func LoadStatusTable(src statusSource) (StatusTable, error) {
	var table StatusTable
	for _, entry := range []struct {
		name string
		dst  *storage.LookupRecord
	}{
		{"To Do", &table.ToDo},
		{"In Progress", &table.InProgress},
		{"Completed", &table.Completed},
	} {
		rec, err := src.GetTaskStatusByName(entry.name)
		if err != nil {
			return StatusTable{}, err
		}
		*entry.dst = *rec
	}
	return table, nil
}
