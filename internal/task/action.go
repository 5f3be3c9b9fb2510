package task

import "fmt"

// Action is a task status transition. The three values below are the only
// recognized transitions; ParseAction rejects everything else.
type Action string

const (
	// ActionStart opens a work log and moves the task to In Progress
	ActionStart Action = "Start"
	// ActionPause closes the open work log and moves the task back to To Do
	ActionPause Action = "Pause"
	// ActionComplete closes the open work log and moves the task to Completed
	ActionComplete Action = "Complete"
)

// ParseAction validates a raw action string
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionStart, ActionPause, ActionComplete:
		return Action(s), nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrInvalidAction)
	}
}

// Message returns the user-facing confirmation for a transition
func (a Action) Message() string {
	switch a {
	case ActionStart:
		return "Task Started"
	case ActionPause:
		return "Task Paused"
	case ActionComplete:
		return "Task Completed"
	}
	return ""
}
