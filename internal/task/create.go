package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/EethalTeam/eethal-hrm-node/internal/storage"
)

// CreateRequest describes one logical task assignment that fans out into
// one task record per assignee.
type CreateRequest struct {
	TaskCode      string     `json:"taskCode"`
	TaskName      string     `json:"taskName"`
	ProjectID     string     `json:"projectId"`
	Description   string     `json:"description"`
	StartDate     *time.Time `json:"startDate"`
	DueDate       *time.Time `json:"dueDate"`
	PriorityID    string     `json:"taskPriorityId"`
	Assignees     []string   `json:"assignees"`
	CreatedBy     string     `json:"createdBy"`
	ReqLeadCount  string     `json:"reqLeadCount"`
	CompLeadCount string     `json:"compLeadCount"`
}

// AssigneeError reports a failed notification for one assignee
type AssigneeError struct {
	AssigneeID string `json:"assigneeId"`
	Error      string `json:"error"`
}

// CreateResult holds the created tasks plus per-assignee notification
// failures. Task creation is atomic per assignee; notification delivery is
// best-effort and reported here instead of failing the request.
type CreateResult struct {
	Tasks              []*storage.TaskRecord `json:"tasks"`
	NotificationErrors []AssigneeError       `json:"notificationErrors"`
}

// CreateForAssignees creates one independent task per assignee. All tasks
// share the request fields except AssignedTo, which is singular per record.
func (e *Engine) CreateForAssignees(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	if req.TaskName == "" || req.ProjectID == "" {
		return nil, fmt.Errorf("taskName and projectId are required: %w", ErrValidation)
	}
	if len(req.Assignees) == 0 {
		return nil, fmt.Errorf("assignees must be a non-empty array of employee IDs: %w", ErrValidation)
	}

	creator, err := e.store.GetEmployee(req.CreatedBy)
	if err != nil {
		return nil, err
	}

	now := e.now()
	result := &CreateResult{NotificationErrors: []AssigneeError{}}

	for _, assigneeID := range req.Assignees {
		t := &storage.TaskRecord{
			ID:            storage.GenerateID(),
			TaskCode:      req.TaskCode,
			TaskName:      req.TaskName,
			ProjectID:     req.ProjectID,
			Description:   req.Description,
			StartDate:     req.StartDate,
			DueDate:       req.DueDate,
			StatusID:      e.statuses.ToDo.ID,
			PriorityID:    req.PriorityID,
			AssignedTo:    []string{assigneeID},
			CreatedBy:     req.CreatedBy,
			ReqLeadCount:  req.ReqLeadCount,
			CompLeadCount: req.CompLeadCount,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if err := e.store.SaveTask(t); err != nil {
			return nil, err
		}
		result.Tasks = append(result.Tasks, t)

		// One failed notification must not stop the loop.
		assignee, err := e.store.GetEmployee(assigneeID)
		if err != nil {
			msg := err.Error()
			if errors.Is(err, storage.ErrNotFound) {
				msg = "Assignee not found"
			}
			result.NotificationErrors = append(result.NotificationErrors,
				AssigneeError{AssigneeID: assigneeID, Error: msg})
			continue
		}
		if err := e.notifier.NotifyAssignment(ctx, t, assignee, creator); err != nil {
			result.NotificationErrors = append(result.NotificationErrors,
				AssigneeError{AssigneeID: assigneeID, Error: err.Error()})
		}
	}

	return result, nil
}
