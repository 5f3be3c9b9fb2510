package web

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EethalTeam/eethal-hrm-node/internal/storage"
)

func (s *Server) handleListNotifications(c *gin.Context) {
	notifications, err := s.store.ListNotifications(c.Param("employeeId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"count":         len(notifications),
		"notifications": notifications,
	})
}

func (s *Server) handleMarkNotificationSeen(c *gin.Context) {
	if err := s.store.MarkNotificationSeen(c.Param("id")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notification marked as seen",
	})
}

// handleNotificationStream pushes notifications to the client over SSE.
// Delivery is best-effort; a dropped connection just ends the stream.
func (s *Server) handleNotificationStream(c *gin.Context) {
	ch, cancel := s.hub.Subscribe(c.Param("employeeId"))
	defer cancel()

	c.Stream(func(w io.Writer) bool {
		select {
		case n, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("receiveNotification", n)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
