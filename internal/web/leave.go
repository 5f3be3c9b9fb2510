package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EethalTeam/eethal-hrm-node/internal/storage"
)

const maxLeaveReasonLength = 500

// createLeaveRequest creates a new leave request, defaulting to Pending
type createLeaveRequest struct {
	EmployeeID  string     `json:"employeeId"`
	LeaveTypeID string     `json:"leaveTypeId"`
	RequestedTo string     `json:"requestedTo"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	TotalDays   float64    `json:"totalDays"`
	Reason      string     `json:"reason"`
}

func (s *Server) handleCreateLeaveRequest(c *gin.Context) {
	var req createLeaveRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if req.EmployeeID == "" || req.LeaveTypeID == "" || req.RequestedTo == "" ||
		req.StartDate == nil || req.EndDate == nil || req.TotalDays <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "employeeId, leaveTypeId, requestedTo, startDate, endDate and totalDays are required",
		})
		return
	}
	if len(req.Reason) > maxLeaveReasonLength {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Reason cannot exceed 500 characters"})
		return
	}

	if _, err := s.store.GetEmployee(req.EmployeeID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error", "error": err.Error()})
		return
	}

	pending, err := s.store.GetRequestStatusByName("Pending")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error", "error": err.Error()})
		return
	}

	now := time.Now()
	lr := &storage.LeaveRequestRecord{
		ID:          storage.GenerateID(),
		EmployeeID:  req.EmployeeID,
		LeaveTypeID: req.LeaveTypeID,
		StatusID:    pending.ID,
		RequestedTo: req.RequestedTo,
		StartDate:   *req.StartDate,
		EndDate:     *req.EndDate,
		TotalDays:   req.TotalDays,
		Reason:      req.Reason,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.SaveLeaveRequest(lr); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"message":      "Leave request created successfully",
		"leaveRequest": lr,
	})
}

func (s *Server) handleListLeaveRequests(c *gin.Context) {
	requests, err := s.store.ListLeaveRequests(c.Query("employeeId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"count":         len(requests),
		"leaveRequests": requests,
	})
}

func (s *Server) handleGetLeaveRequest(c *gin.Context) {
	lr, err := s.store.GetLeaveRequest(c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Leave request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"leaveRequest": lr,
	})
}

type updateLeaveStatusRequest struct {
	RequestStatusID string `json:"requestStatusId"`
}

func (s *Server) handleUpdateLeaveRequestStatus(c *gin.Context) {
	var req updateLeaveStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if req.RequestStatusID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "requestStatusId is required"})
		return
	}

	status, err := s.store.GetRequestStatus(req.RequestStatusID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request status"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error", "error": err.Error()})
		return
	}

	lr, err := s.store.GetLeaveRequest(c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Leave request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error", "error": err.Error()})
		return
	}

	lr.StatusID = status.ID
	lr.UpdatedAt = time.Now()
	if err := s.store.SaveLeaveRequest(lr); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Leave request status updated",
		"leaveRequest": lr,
	})
}
