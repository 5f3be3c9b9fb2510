package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EethalTeam/eethal-hrm-node/internal/notify"
	"github.com/EethalTeam/eethal-hrm-node/internal/storage"
	"github.com/EethalTeam/eethal-hrm-node/internal/task"
	"github.com/EethalTeam/eethal-hrm-node/internal/telecmi"
)

// TaskService runs task creation and lifecycle transitions.
// Implementations: task.Engine
type TaskService interface {
	CreateForAssignees(ctx context.Context, req task.CreateRequest) (*task.CreateResult, error)
	Transition(ctx context.Context, req task.TransitionRequest) (*storage.TaskRecord, error)
}

// CallLogService aggregates call logs from the telephony provider.
// Implementations: telecmi.Client
type CallLogService interface {
	FetchAllCallLogs(ctx context.Context, now time.Time) ([]telecmi.CallLog, error)
}

// Store is the persistence surface the handlers need.
// Implementations: storage.Store
type Store interface {
	GetTask(id string) (*storage.TaskRecord, error)
	SaveTask(t *storage.TaskRecord) error
	ListTasks(assignedTo string) ([]*storage.TaskRecord, error)
	DeleteTask(id string) error

	GetEmployee(id string) (*storage.EmployeeRecord, error)
	GetProject(id string) (*storage.ProjectRecord, error)
	GetTaskStatus(id string) (*storage.LookupRecord, error)
	GetTaskPriority(id string) (*storage.LookupRecord, error)

	SaveLeaveRequest(lr *storage.LeaveRequestRecord) error
	GetLeaveRequest(id string) (*storage.LeaveRequestRecord, error)
	ListLeaveRequests(employeeID string) ([]*storage.LeaveRequestRecord, error)
	GetRequestStatusByName(name string) (*storage.LookupRecord, error)
	GetRequestStatus(id string) (*storage.LookupRecord, error)

	ListNotifications(toEmployeeID string) ([]*storage.NotificationRecord, error)
	MarkNotificationSeen(id string) error
}

// Server is the HRM backend web server
type Server struct {
	tasks    TaskService
	callLogs CallLogService
	store    Store
	hub      *notify.Hub
	router   *gin.Engine
}

// NewServer creates a new web server
func NewServer(tasks TaskService, callLogs CallLogService, store Store, hub *notify.Hub) *Server {
	router := gin.Default()

	s := &Server{
		tasks:    tasks,
		callLogs: callLogs,
		store:    store,
		hub:      hub,
		router:   router,
	}

	router.GET("/healthz", s.handleHealthz)

	api := router.Group("/api")
	{
		api.POST("/tasks", s.handleCreateTask)
		api.GET("/tasks", s.handleListTasks)
		api.GET("/tasks/:id", s.handleGetTask)
		api.PUT("/tasks/:id", s.handleUpdateTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.POST("/tasks/status", s.handleUpdateTaskStatus)

		api.GET("/call-logs", s.handleCallLogs)

		api.POST("/leave-requests", s.handleCreateLeaveRequest)
		api.GET("/leave-requests", s.handleListLeaveRequests)
		api.GET("/leave-requests/:id", s.handleGetLeaveRequest)
		api.PUT("/leave-requests/:id/status", s.handleUpdateLeaveRequestStatus)

		api.GET("/notifications/:employeeId", s.handleListNotifications)
		api.PUT("/notifications/:id/seen", s.handleMarkNotificationSeen)
		api.GET("/notifications/stream/:employeeId", s.handleNotificationStream)
	}

	return s
}

// Run starts the web server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
