package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nhle/backlog-dashboard/internal/model"
	"github.com/nhle/backlog-dashboard/internal/source/backlog"
)

// TaskFetcher is the slice of the aggregation pipeline the HTTP layer
// depends on.
type TaskFetcher interface {
	FetchTasks(ctx context.Context) ([]model.Task, error)
	Users(ctx context.Context) ([]backlog.User, error)
}

// Server provides the HTTP surface of the dashboard: the JSON API the
// frontend polls plus the static frontend itself.
type Server struct {
	engine    *gin.Engine
	tasks     TaskFetcher
	log       *logrus.Logger
	staticDir string
}

// New constructs the HTTP server with routes and middleware configured.
func New(tasks TaskFetcher, log *logrus.Logger, staticDir string) *Server {
	if log == nil {
		log = logrus.New()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())

	srv := &Server{
		engine:    router,
		tasks:     tasks,
		log:       log,
		staticDir: staticDir,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API and static handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)
		api.GET("/tasks", s.handleListTasks)
		api.GET("/users", s.handleListUsers)
	}

	s.mountStatic()
}

// requestID tags every request with a uuid for log correlation.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError logs the failure and returns the single-message error
// envelope the frontend understands.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	s.log.WithField("operation", c.FullPath()).
		WithField("requestId", c.GetString("request_id")).
		WithError(err).
		Error("request failed")
	c.JSON(status, gin.H{"error": err.Error()})
}
