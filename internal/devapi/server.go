// Package devapi is an in-memory implementation of the Todo REST API used
// for local development and end-to-end tests.
package devapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/d-kuro/todo-mcp/internal/logging"
	"github.com/d-kuro/todo-mcp/internal/schema"
)

const apiKeyHeader = "x-api-key"

// Server serves the Todo REST API from a Store.
type Server struct {
	store  *Store
	apiKey string
	logger *logging.Logger
	engine *gin.Engine
}

// New returns a server that accepts requests carrying apiKey.
func New(apiKey string, logger *logging.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	if logger == nil {
		logger = logging.Discard()
	}

	s := &Server{
		store:  NewStore(),
		apiKey: apiKey,
		logger: logger,
		engine: gin.New(),
	}

	s.engine.Use(gin.Recovery(), s.logRequests(), s.requireAPIKey())

	todos := s.engine.Group("/todos")
	todos.GET("", s.listTodos)
	todos.POST("", s.createTodo)
	todos.GET("/:id", s.getTodo)
	todos.PATCH("/:id", s.updateTodo)
	todos.PATCH("/:id/toggle", s.toggleTodo)
	todos.DELETE("/:id", s.deleteTodo)

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Store exposes the backing store.
func (s *Server) Store() *Store {
	return s.store
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("Handled request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	}
}

func (s *Server) requireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(apiKeyHeader) != s.apiKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid API key"})
			return
		}
		c.Next()
	}
}

// todoID parses the :id parameter, writing a 400 response when it is invalid.
func todoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid todo ID"})
		return 0, false
	}
	return id, true
}

func notFound(c *gin.Context, id int64) {
	c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("Todo with ID %d not found", id)})
}

func (s *Server) listTodos(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.List())
}

func (s *Server) createTodo(c *gin.Context) {
	var in schema.CreateTodoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title is required"})
		return
	}

	c.JSON(http.StatusCreated, s.store.Create(in))
}

func (s *Server) getTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	todo, found := s.store.Get(id)
	if !found {
		notFound(c, id)
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (s *Server) updateTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	var patch schema.TodoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title cannot be empty"})
		return
	}

	todo, found := s.store.Update(id, patch)
	if !found {
		notFound(c, id)
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (s *Server) toggleTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	todo, found := s.store.Toggle(id)
	if !found {
		notFound(c, id)
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (s *Server) deleteTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	if !s.store.Delete(id) {
		notFound(c, id)
		return
	}
	c.Status(http.StatusNoContent)
}
