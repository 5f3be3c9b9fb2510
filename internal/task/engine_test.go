package task

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/EethalTeam/eethal-hrm-node/internal/storage"
)

func newTestEngine(store *fakeStore, notifier *mockNotifier, now time.Time) *Engine {
	e := NewEngine(store, notifier, testStatuses)
	e.now = func() time.Time { return now }
	return e
}

func seedTask(store *fakeStore, id string, assignees []string, logs []storage.WorkLog) *storage.TaskRecord {
	t := &storage.TaskRecord{
		ID:          id,
		TaskName:    "Prepare payroll",
		ProjectID:   "proj-1",
		Description: "Monthly payroll run",
		StatusID:    testStatuses.ToDo.ID,
		AssignedTo:  assignees,
		CreatedBy:   "mgr-1",
		WorkLogs:    logs,
	}
	store.tasks[id] = t
	return t
}

func TestTransitionStart(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	seedTask(store, "t1", []string{"e1", "e2"}, nil)

	engine := newTestEngine(store, &mockNotifier{}, now)
	got, err := engine.Transition(context.Background(), TransitionRequest{TaskID: "t1", Action: ActionStart})
	if err != nil {
		t.Fatalf("Transition failed: %v", err)
	}

	if len(got.WorkLogs) != 1 {
		t.Fatalf("expected 1 work log, got %d", len(got.WorkLogs))
	}
	log := got.WorkLogs[0]
	if log.EmployeeID != "e1" {
		t.Errorf("expected first assignee to be timed, got %q", log.EmployeeID)
	}
	if !log.StartTime.Equal(now) {
		t.Errorf("expected startTime %v, got %v", now, log.StartTime)
	}
	if log.EndTime != nil {
		t.Errorf("expected open log, got endTime %v", log.EndTime)
	}
	if got.StatusID != testStatuses.InProgress.ID {
		t.Errorf("expected status %q, got %q", testStatuses.InProgress.ID, got.StatusID)
	}
	if len(store.saved) != 1 {
		t.Errorf("expected task to be persisted once, got %d saves", len(store.saved))
	}
}

func TestTransitionCloseWorkLog(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	closed := start.Add(time.Hour)

	tests := []struct {
		name      string
		action    Action
		logs      []storage.WorkLog
		elapsed   time.Duration
		wantLogs  int
		wantHours *float64
		wantOpen  bool
	}{
		{
			name:      "pause closes open log after 90 minutes",
			action:    ActionPause,
			logs:      []storage.WorkLog{{EmployeeID: "e1", StartTime: start}},
			elapsed:   90 * time.Minute,
			wantLogs:  1,
			wantHours: ptr(1.5),
		},
		{
			name:      "complete closes open log after 15 minutes",
			action:    ActionComplete,
			logs:      []storage.WorkLog{{EmployeeID: "e1", StartTime: start}},
			elapsed:   15 * time.Minute,
			wantLogs:  1,
			wantHours: ptr(0.25),
		},
		{
			name:      "hoursWorked rounds to 2 decimals",
			action:    ActionPause,
			logs:      []storage.WorkLog{{EmployeeID: "e1", StartTime: start}},
			elapsed:   10 * time.Minute, // 0.1666… hours
			wantLogs:  1,
			wantHours: ptr(0.17),
		},
		{
			name:      "zero elapsed time yields zero hours",
			action:    ActionPause,
			logs:      []storage.WorkLog{{EmployeeID: "e1", StartTime: start}},
			elapsed:   0,
			wantLogs:  1,
			wantHours: ptr(0.0),
		},
		{
			name:     "pause with no logs is a silent no-op",
			action:   ActionPause,
			logs:     nil,
			elapsed:  time.Hour,
			wantLogs: 0,
		},
		{
			name:   "pause with closed tail leaves logs unchanged",
			action: ActionPause,
			logs: []storage.WorkLog{
				{EmployeeID: "e1", StartTime: start, EndTime: &closed, HoursWorked: ptr(1.0)},
			},
			elapsed:   2 * time.Hour,
			wantLogs:  1,
			wantHours: ptr(1.0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := start.Add(tt.elapsed)
			store := newFakeStore()
			seedTask(store, "t1", []string{"e1"}, tt.logs)
			store.employees["e1"] = &storage.EmployeeRecord{ID: "e1", Name: "Asha"}

			engine := newTestEngine(store, &mockNotifier{}, now)
			got, err := engine.Transition(context.Background(), TransitionRequest{TaskID: "t1", Action: tt.action})
			if err != nil {
				t.Fatalf("Transition failed: %v", err)
			}

			if len(got.WorkLogs) != tt.wantLogs {
				t.Fatalf("expected %d work logs, got %d", tt.wantLogs, len(got.WorkLogs))
			}
			if tt.wantLogs == 0 {
				return
			}

			last := got.WorkLogs[len(got.WorkLogs)-1]
			if tt.wantHours != nil {
				if last.HoursWorked == nil {
					t.Fatalf("expected hoursWorked %v, got nil", *tt.wantHours)
				}
				if *last.HoursWorked != *tt.wantHours {
					t.Errorf("expected hoursWorked %v, got %v", *tt.wantHours, *last.HoursWorked)
				}
				if *last.HoursWorked < 0 {
					t.Errorf("hoursWorked must be non-negative, got %v", *last.HoursWorked)
				}
			}

			wantStatus := testStatuses.ToDo.ID
			if tt.action == ActionComplete {
				wantStatus = testStatuses.Completed.ID
			}
			if got.StatusID != wantStatus {
				t.Errorf("expected status %q, got %q", wantStatus, got.StatusID)
			}
		})
	}
}

func TestTransitionCompleteNotifiesCreator(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("uses assignee display name", func(t *testing.T) {
		store := newFakeStore()
		seedTask(store, "t1", []string{"e1"}, nil)
		store.employees["e1"] = &storage.EmployeeRecord{ID: "e1", Name: "Asha"}
		notifier := &mockNotifier{}

		engine := newTestEngine(store, notifier, now)
		_, err := engine.Transition(context.Background(), TransitionRequest{
			TaskID:   "t1",
			Action:   ActionComplete,
			Feedback: "well done",
		})
		if err != nil {
			t.Fatalf("Transition failed: %v", err)
		}

		if len(notifier.completions) != 1 {
			t.Fatalf("expected 1 completion notification, got %d", len(notifier.completions))
		}
		if notifier.completions[0] != "Asha|well done" {
			t.Errorf("unexpected completion payload: %q", notifier.completions[0])
		}
	})

	t.Run("falls back to generic name when assignee record is missing", func(t *testing.T) {
		store := newFakeStore()
		seedTask(store, "t1", []string{"ghost"}, nil)
		notifier := &mockNotifier{}

		engine := newTestEngine(store, notifier, now)
		_, err := engine.Transition(context.Background(), TransitionRequest{TaskID: "t1", Action: ActionComplete})
		if err != nil {
			t.Fatalf("Transition failed: %v", err)
		}

		if len(notifier.completions) != 1 || !strings.HasPrefix(notifier.completions[0], "Employee|") {
			t.Errorf("expected fallback assignee name, got %v", notifier.completions)
		}
	})

	t.Run("notification failure fails the transition", func(t *testing.T) {
		store := newFakeStore()
		seedTask(store, "t1", []string{"e1"}, nil)
		store.employees["e1"] = &storage.EmployeeRecord{ID: "e1", Name: "Asha"}
		notifier := &mockNotifier{
			CompletionFunc: func(ctx context.Context, tr *storage.TaskRecord, name, feedback string) error {
				return errors.New("push failed")
			},
		}

		engine := newTestEngine(store, notifier, now)
		if _, err := engine.Transition(context.Background(), TransitionRequest{TaskID: "t1", Action: ActionComplete}); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestTransitionGenericUpdates(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	seedTask(store, "t1", []string{"e1"}, nil)

	engine := newTestEngine(store, &mockNotifier{}, now)
	got, err := engine.Transition(context.Background(), TransitionRequest{
		TaskID:           "t1",
		Action:           ActionStart,
		Feedback:         "looks good",
		CompLeadCount:    "12",
		ProgressDetails:  "halfway there",
		ReasonForPending: "waiting on approvals",
	})
	if err != nil {
		t.Fatalf("Transition failed: %v", err)
	}

	if got.Feedback != "looks good" {
		t.Errorf("expected feedback to be set, got %q", got.Feedback)
	}
	if got.CompLeadCount != "12" {
		t.Errorf("expected compLeadCount 12, got %q", got.CompLeadCount)
	}
	if len(got.ProgressDetails) != 1 {
		t.Fatalf("expected 1 progress entry, got %d", len(got.ProgressDetails))
	}
	if !strings.HasPrefix(got.ProgressDetails[0], "halfway there - ") {
		t.Errorf("expected timestamp suffix on progress entry, got %q", got.ProgressDetails[0])
	}
	if len(got.ReasonForPending) != 1 || got.ReasonForPending[0] != "waiting on approvals" {
		t.Errorf("unexpected reasonForPending: %v", got.ReasonForPending)
	}
}

func TestTransitionErrors(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("missing task", func(t *testing.T) {
		engine := newTestEngine(newFakeStore(), &mockNotifier{}, now)
		_, err := engine.Transition(context.Background(), TransitionRequest{TaskID: "nope", Action: ActionStart})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("unrecognized action", func(t *testing.T) {
		store := newFakeStore()
		seedTask(store, "t1", []string{"e1"}, nil)
		engine := newTestEngine(store, &mockNotifier{}, now)
		_, err := engine.Transition(context.Background(), TransitionRequest{TaskID: "t1", Action: Action("Resume")})
		if !errors.Is(err, ErrInvalidAction) {
			t.Errorf("expected ErrInvalidAction, got %v", err)
		}
	})
}

func TestParseAction(t *testing.T) {
	for _, valid := range []string{"Start", "Pause", "Complete"} {
		if _, err := ParseAction(valid); err != nil {
			t.Errorf("ParseAction(%q) failed: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "start", "Done", "Resume"} {
		if _, err := ParseAction(invalid); !errors.Is(err, ErrInvalidAction) {
			t.Errorf("ParseAction(%q): expected ErrInvalidAction, got %v", invalid, err)
		}
	}
}

func ptr(f float64) *float64 { return &f }
