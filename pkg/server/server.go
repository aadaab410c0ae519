// Package server exposes the dispatcher's two public operations over HTTP.
// It is a deliberately thin shell: routing and rendering beyond these two
// endpoints live outside this subsystem.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/folio-site/folio/pkg/assistant"
	"github.com/folio-site/folio/pkg/models"
)

// Server serves the chat and health endpoints.
type Server struct {
	assistant *assistant.Assistant
	engine    *gin.Engine
	listen    string
	log       *zap.Logger
}

// ChatRequest is the POST /api/chat body.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

// ChatResponse is the POST /api/chat reply.
type ChatResponse struct {
	SessionID string      `json:"session_id"`
	Reply     string      `json:"reply"`
	Mode      models.Mode `json:"mode"`
}

// HealthResponse is the GET /api/health reply.
type HealthResponse struct {
	Healthy bool        `json:"healthy"`
	Mode    models.Mode `json:"mode"`
}

// New creates a Server around the given assistant.
func New(a *assistant.Assistant, listen string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{assistant: a, engine: engine, listen: listen, log: log}
	engine.POST("/api/chat", s.handleChat)
	engine.GET("/api/health", s.handleHealth)
	return s
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe starts the server with graceful shutdown support.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.listen,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("folio server listening", zap.String("addr", s.listen))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	reply, mode := s.assistant.Respond(c.Request.Context(), sessionID, req.Message)
	c.JSON(http.StatusOK, ChatResponse{
		SessionID: sessionID,
		Reply:     reply,
		Mode:      mode,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	healthy, mode := s.assistant.CheckHealth(c.Request.Context())
	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, HealthResponse{Healthy: healthy, Mode: mode})
}
