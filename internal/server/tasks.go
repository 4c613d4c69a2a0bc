package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleListTasks runs one aggregation pipeline pass and returns the
// classified task list. Every call is an independent run; nothing is
// cached between requests.
func (s *Server) handleListTasks(c *gin.Context) {
	const op = "server.handleListTasks"
	log := s.log.WithField("operation", op)

	tasks, err := s.tasks.FetchTasks(c.Request.Context())
	if err != nil {
		s.respondError(c, http.StatusBadGateway, err)
		return
	}

	log.WithField("count", len(tasks)).Debug("tasks fetched")
	c.JSON(http.StatusOK, tasks)
}

// handleListUsers returns the space member list for the assignee
// filter dropdown.
func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.tasks.Users(c.Request.Context())
	if err != nil {
		s.respondError(c, http.StatusBadGateway, err)
		return
	}

	c.JSON(http.StatusOK, users)
}
