package task

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/EethalTeam/eethal-hrm-node/internal/storage"
)

const hoursPerMs = 1.0 / (1000 * 60 * 60)

// Engine owns the task status state machine and work-log accounting.
// The status lookup table is injected so no status IDs are hardcoded.
type Engine struct {
	store    Store
	notifier Notifier
	statuses StatusTable

	// now is swappable for tests
	now func() time.Time
	loc *time.Location
}

// NewEngine creates a lifecycle engine. Progress timestamps are localized
// to India time, matching the rest of the product.
func NewEngine(store Store, notifier Notifier, statuses StatusTable) *Engine {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.UTC
	}
	return &Engine{
		store:    store,
		notifier: notifier,
		statuses: statuses,
		now:      time.Now,
		loc:      loc,
	}
}

// TransitionRequest carries a status transition plus optional field updates
// that are applied regardless of the action.
type TransitionRequest struct {
	TaskID           string
	Action           Action
	Feedback         string
	ProgressDetails  string
	ReasonForPending string
	CompLeadCount    string
}

// Transition applies a status transition to a task and persists the result.
//
// Start appends an open work log for the first assignee. Pause and Complete
// close the open tail log, if any, computing hours worked; a closed or
// missing tail log is a silent no-op. Complete also notifies the task
// creator.
func (e *Engine) Transition(ctx context.Context, req TransitionRequest) (*storage.TaskRecord, error) {
	t, err := e.store.GetTask(req.TaskID)
	if err != nil {
		return nil, err
	}

	now := e.now()

	switch req.Action {
	case ActionStart:
		log := storage.WorkLog{StartTime: now}
		if len(t.AssignedTo) > 0 {
			// Only the first assignee is timed.
			log.EmployeeID = t.AssignedTo[0]
		}
		t.WorkLogs = append(t.WorkLogs, log)
		t.StatusID = e.statuses.InProgress.ID

	case ActionPause:
		closeOpenWorkLog(t, now)
		t.StatusID = e.statuses.ToDo.ID

	case ActionComplete:
		closeOpenWorkLog(t, now)
		if err := e.notifyCompletion(ctx, t, req.Feedback); err != nil {
			return nil, err
		}
		t.StatusID = e.statuses.Completed.ID

	default:
		return nil, fmt.Errorf("%q: %w", req.Action, ErrInvalidAction)
	}

	if req.Feedback != "" {
		t.Feedback = req.Feedback
	}
	if req.CompLeadCount != "" {
		t.CompLeadCount = req.CompLeadCount
	}
	if req.ProgressDetails != "" {
		t.ProgressDetails = append(t.ProgressDetails,
			fmt.Sprintf("%s - %s", req.ProgressDetails, e.localTimestamp(now)))
	}
	if req.ReasonForPending != "" {
		t.ReasonForPending = append(t.ReasonForPending, req.ReasonForPending)
	}

	t.UpdatedAt = now
	if err := e.store.SaveTask(t); err != nil {
		return nil, err
	}
	return t, nil
}

// closeOpenWorkLog closes the tail work log if it is open. An already
// closed tail, or an empty log list, leaves the logs untouched.
func closeOpenWorkLog(t *storage.TaskRecord, now time.Time) {
	if len(t.WorkLogs) == 0 {
		return
	}
	last := &t.WorkLogs[len(t.WorkLogs)-1]
	if last.EndTime != nil {
		return
	}

	end := now
	last.EndTime = &end

	hours := float64(end.Sub(last.StartTime).Milliseconds()) * hoursPerMs
	hours = math.Round(hours*100) / 100
	last.HoursWorked = &hours
}

func (e *Engine) notifyCompletion(ctx context.Context, t *storage.TaskRecord, feedback string) error {
	assigneeName := "Employee"
	if len(t.AssignedTo) > 0 {
		emp, err := e.store.GetEmployee(t.AssignedTo[0])
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		if emp != nil {
			assigneeName = emp.Name
		}
	}
	return e.notifier.NotifyCompletion(ctx, t, assigneeName, feedback)
}

func (e *Engine) localTimestamp(t time.Time) string {
	return t.In(e.loc).Format("2/1/2006, 3:04:05 pm")
}
