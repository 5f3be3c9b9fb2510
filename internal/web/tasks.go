package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EethalTeam/eethal-hrm-node/internal/storage"
	"github.com/EethalTeam/eethal-hrm-node/internal/task"
)

// taskView is a task with referenced records resolved for the response
type taskView struct {
	*storage.TaskRecord
	Project   *storage.ProjectRecord    `json:"project,omitempty"`
	Status    *storage.LookupRecord     `json:"status,omitempty"`
	Priority  *storage.LookupRecord     `json:"priority,omitempty"`
	Assignees []*storage.EmployeeRecord `json:"assigneeDetails,omitempty"`
}

// populateTask resolves references the way the client expects them.
// Dangling references resolve to nothing rather than failing the request.
func (s *Server) populateTask(t *storage.TaskRecord) taskView {
	view := taskView{TaskRecord: t}
	if t.ProjectID != "" {
		view.Project, _ = s.store.GetProject(t.ProjectID)
	}
	if t.StatusID != "" {
		view.Status, _ = s.store.GetTaskStatus(t.StatusID)
	}
	if t.PriorityID != "" {
		view.Priority, _ = s.store.GetTaskPriority(t.PriorityID)
	}
	for _, id := range t.AssignedTo {
		if emp, err := s.store.GetEmployee(id); err == nil {
			view.Assignees = append(view.Assignees, emp)
		}
	}
	return view
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req task.CreateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	result, err := s.tasks.CreateForAssignees(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, task.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Creating employee not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":            true,
		"message":            "Tasks created successfully",
		"tasks":              result.Tasks,
		"notificationErrors": result.NotificationErrors,
	})
}

func (s *Server) handleListTasks(c *gin.Context) {
	employeeID := c.Query("employeeId")
	role := c.Query("role")

	// Admins see everything; everyone else sees only their own tasks
	filter := ""
	if role != "Super Admin" && role != "Admin" {
		filter = employeeID
	}

	tasks, err := s.store.ListTasks(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error", "error": err.Error()})
		return
	}

	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, s.populateTask(t))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(views),
		"tasks":   views,
	})
}

func (s *Server) handleGetTask(c *gin.Context) {
	t, err := s.store.GetTask(c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"task":    s.populateTask(t),
	})
}

// updateTaskRequest updates only the fields present in the body
type updateTaskRequest struct {
	TaskName      *string    `json:"taskName"`
	Description   *string    `json:"description"`
	StartDate     *time.Time `json:"startDate"`
	DueDate       *time.Time `json:"dueDate"`
	StatusID      *string    `json:"taskStatusId"`
	PriorityID    *string    `json:"taskPriorityId"`
	AssignedTo    *[]string  `json:"assignedTo"`
	ReqLeadCount  *string    `json:"reqLeadCount"`
	CompLeadCount *string    `json:"compLeadCount"`
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var req updateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	t, err := s.store.GetTask(c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error", "error": err.Error()})
		return
	}

	if req.TaskName != nil {
		t.TaskName = *req.TaskName
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.StartDate != nil {
		t.StartDate = req.StartDate
	}
	if req.DueDate != nil {
		t.DueDate = req.DueDate
	}
	if req.StatusID != nil {
		t.StatusID = *req.StatusID
	}
	if req.PriorityID != nil {
		t.PriorityID = *req.PriorityID
	}
	if req.AssignedTo != nil {
		t.AssignedTo = *req.AssignedTo
	}
	if req.ReqLeadCount != nil {
		t.ReqLeadCount = *req.ReqLeadCount
	}
	if req.CompLeadCount != nil {
		t.CompLeadCount = *req.CompLeadCount
	}
	t.UpdatedAt = time.Now()

	if err := s.store.SaveTask(t); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task updated successfully",
		"task":    t,
	})
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.store.DeleteTask(c.Param("id")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task deleted successfully",
	})
}

// updateTaskStatusRequest drives the lifecycle state machine
type updateTaskStatusRequest struct {
	TaskID           string `json:"taskId"`
	Status           string `json:"status"`
	Feedback         string `json:"feedback"`
	ProgressDetails  string `json:"progressDetails"`
	ReasonForPending string `json:"reasonForPending"`
	CompLeadCount    string `json:"compLeadCount"`
}

func (s *Server) handleUpdateTaskStatus(c *gin.Context) {
	var req updateTaskStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if req.TaskID == "" || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Task ID and status are required"})
		return
	}

	action, err := task.ParseAction(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status value"})
		return
	}

	t, err := s.tasks.Transition(c.Request.Context(), task.TransitionRequest{
		TaskID:           req.TaskID,
		Action:           action,
		Feedback:         req.Feedback,
		ProgressDetails:  req.ProgressDetails,
		ReasonForPending: req.ReasonForPending,
		CompLeadCount:    req.CompLeadCount,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": action.Message(),
		"task":    s.populateTask(t),
	})
}
