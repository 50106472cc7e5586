package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness.
type HealthHandler struct {
	service  string
	sessions *SessionRegistry
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(service string, sessions *SessionRegistry) *HealthHandler {
	return &HealthHandler{service: service, sessions: sessions}
}

// RegisterRoutes registers the health route.
func (h *HealthHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
}

// Health always answers ok while the process serves requests.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  h.service,
		"sessions": h.sessions.Len(),
	})
}
