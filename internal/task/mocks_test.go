package task

import (
	"context"
	"fmt"

	"github.com/EethalTeam/eethal-hrm-node/internal/storage"
)

// fakeStore is an in-memory Store for engine tests
type fakeStore struct {
	tasks     map[string]*storage.TaskRecord
	employees map[string]*storage.EmployeeRecord
	saved     []*storage.TaskRecord

	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tasks:     make(map[string]*storage.TaskRecord),
		employees: make(map[string]*storage.EmployeeRecord),
	}
}

func (f *fakeStore) GetTask(id string) (*storage.TaskRecord, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, storage.ErrNotFound)
	}
	return t, nil
}

func (f *fakeStore) SaveTask(t *storage.TaskRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.tasks[t.ID] = t
	f.saved = append(f.saved, t)
	return nil
}

func (f *fakeStore) GetEmployee(id string) (*storage.EmployeeRecord, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, fmt.Errorf("employee %s: %w", id, storage.ErrNotFound)
	}
	return e, nil
}

// mockNotifier records calls and fails on demand
type mockNotifier struct {
	AssignmentFunc func(ctx context.Context, t *storage.TaskRecord, assignee, creator *storage.EmployeeRecord) error
	CompletionFunc func(ctx context.Context, t *storage.TaskRecord, assigneeName, feedback string) error

	assignments []string // assignee IDs notified
	completions []string // "<assigneeName>|<feedback>" per call
}

func (m *mockNotifier) NotifyAssignment(ctx context.Context, t *storage.TaskRecord, assignee, creator *storage.EmployeeRecord) error {
	m.assignments = append(m.assignments, assignee.ID)
	if m.AssignmentFunc != nil {
		return m.AssignmentFunc(ctx, t, assignee, creator)
	}
	return nil
}

func (m *mockNotifier) NotifyCompletion(ctx context.Context, t *storage.TaskRecord, assigneeName, feedback string) error {
	m.completions = append(m.completions, assigneeName+"|"+feedback)
	if m.CompletionFunc != nil {
		return m.CompletionFunc(ctx, t, assigneeName, feedback)
	}
	return nil
}

var testStatuses = StatusTable{
	ToDo:       storage.LookupRecord{ID: "st-todo", Name: "To Do"},
	InProgress: storage.LookupRecord{ID: "st-inprogress", Name: "In Progress"},
	Completed:  storage.LookupRecord{ID: "st-completed", Name: "Completed"},
}
