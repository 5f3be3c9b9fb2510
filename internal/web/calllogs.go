package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleCallLogs(c *gin.Context) {
	calls, err := s.callLogs.FetchAllCallLogs(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(calls),
		"calls":   calls,
	})
}
