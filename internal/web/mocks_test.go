package web

import (
	"context"
	"fmt"
	"time"

	"github.com/EethalTeam/eethal-hrm-node/internal/storage"
	"github.com/EethalTeam/eethal-hrm-node/internal/task"
	"github.com/EethalTeam/eethal-hrm-node/internal/telecmi"
)

type mockTaskService struct {
	CreateFunc     func(ctx context.Context, req task.CreateRequest) (*task.CreateResult, error)
	TransitionFunc func(ctx context.Context, req task.TransitionRequest) (*storage.TaskRecord, error)
}

func (m *mockTaskService) CreateForAssignees(ctx context.Context, req task.CreateRequest) (*task.CreateResult, error) {
	return m.CreateFunc(ctx, req)
}

func (m *mockTaskService) Transition(ctx context.Context, req task.TransitionRequest) (*storage.TaskRecord, error) {
	return m.TransitionFunc(ctx, req)
}

type mockCallLogService struct {
	FetchFunc func(ctx context.Context, now time.Time) ([]telecmi.CallLog, error)
}

func (m *mockCallLogService) FetchAllCallLogs(ctx context.Context, now time.Time) ([]telecmi.CallLog, error) {
	return m.FetchFunc(ctx, now)
}

// mockStore backs handlers with in-memory maps. Individual methods can be
// overridden per test via the Func fields.
type mockStore struct {
	tasks         map[string]*storage.TaskRecord
	employees     map[string]*storage.EmployeeRecord
	leaveRequests map[string]*storage.LeaveRequestRecord
	notifications []*storage.NotificationRecord

	ListTasksFunc func(assignedTo string) ([]*storage.TaskRecord, error)
	SaveTaskFunc  func(t *storage.TaskRecord) error
}

func newMockStore() *mockStore {
	return &mockStore{
		tasks:         make(map[string]*storage.TaskRecord),
		employees:     make(map[string]*storage.EmployeeRecord),
		leaveRequests: make(map[string]*storage.LeaveRequestRecord),
	}
}

func (m *mockStore) GetTask(id string) (*storage.TaskRecord, error) {
	if t, ok := m.tasks[id]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("task %s: %w", id, storage.ErrNotFound)
}

func (m *mockStore) SaveTask(t *storage.TaskRecord) error {
	if m.SaveTaskFunc != nil {
		return m.SaveTaskFunc(t)
	}
	m.tasks[t.ID] = t
	return nil
}

func (m *mockStore) ListTasks(assignedTo string) ([]*storage.TaskRecord, error) {
	if m.ListTasksFunc != nil {
		return m.ListTasksFunc(assignedTo)
	}
	var out []*storage.TaskRecord
	for _, t := range m.tasks {
		if assignedTo == "" {
			out = append(out, t)
			continue
		}
		for _, id := range t.AssignedTo {
			if id == assignedTo {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}

func (m *mockStore) DeleteTask(id string) error {
	if _, ok := m.tasks[id]; !ok {
		return fmt.Errorf("task %s: %w", id, storage.ErrNotFound)
	}
	delete(m.tasks, id)
	return nil
}

func (m *mockStore) GetEmployee(id string) (*storage.EmployeeRecord, error) {
	if e, ok := m.employees[id]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("employee %s: %w", id, storage.ErrNotFound)
}

func (m *mockStore) GetProject(id string) (*storage.ProjectRecord, error) {
	return &storage.ProjectRecord{ID: id, ProjectName: "Project " + id}, nil
}

func (m *mockStore) GetTaskStatus(id string) (*storage.LookupRecord, error) {
	return &storage.LookupRecord{ID: id, Name: "Status " + id}, nil
}

func (m *mockStore) GetTaskPriority(id string) (*storage.LookupRecord, error) {
	return &storage.LookupRecord{ID: id, Name: "Priority " + id}, nil
}

func (m *mockStore) SaveLeaveRequest(lr *storage.LeaveRequestRecord) error {
	m.leaveRequests[lr.ID] = lr
	return nil
}

func (m *mockStore) GetLeaveRequest(id string) (*storage.LeaveRequestRecord, error) {
	if lr, ok := m.leaveRequests[id]; ok {
		return lr, nil
	}
	return nil, fmt.Errorf("leave request %s: %w", id, storage.ErrNotFound)
}

func (m *mockStore) ListLeaveRequests(employeeID string) ([]*storage.LeaveRequestRecord, error) {
	var out []*storage.LeaveRequestRecord
	for _, lr := range m.leaveRequests {
		if employeeID == "" || lr.EmployeeID == employeeID {
			out = append(out, lr)
		}
	}
	return out, nil
}

func (m *mockStore) GetRequestStatusByName(name string) (*storage.LookupRecord, error) {
	return &storage.LookupRecord{ID: "rs-" + name, Name: name}, nil
}

func (m *mockStore) GetRequestStatus(id string) (*storage.LookupRecord, error) {
	valid := map[string]string{
		"rs-Pending":  "Pending",
		"rs-Approved": "Approved",
		"rs-Rejected": "Rejected",
	}
	if name, ok := valid[id]; ok {
		return &storage.LookupRecord{ID: id, Name: name}, nil
	}
	return nil, fmt.Errorf("request_statuses %s: %w", id, storage.ErrNotFound)
}

func (m *mockStore) ListNotifications(toEmployeeID string) ([]*storage.NotificationRecord, error) {
	var out []*storage.NotificationRecord
	for _, n := range m.notifications {
		if n.ToEmployeeID == toEmployeeID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockStore) MarkNotificationSeen(id string) error {
	for _, n := range m.notifications {
		if n.ID == id {
			n.Status = storage.NotificationSeen
			return nil
		}
	}
	return fmt.Errorf("notification %s: %w", id, storage.ErrNotFound)
}
