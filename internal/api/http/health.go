package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Redis     string    `json:"redis"`
	LLM       string    `json:"llm"`
}

type HealthHandler struct {
	serviceName   string
	version       string
	redis         Pinger
	llmConfigured bool
}

// NewHealthHandler creates a HealthHandler. redis may be nil when the plan
// cache is disabled.
func NewHealthHandler(serviceName, version string, redis Pinger, llmConfigured bool) *HealthHandler {
	return &HealthHandler{
		serviceName:   serviceName,
		version:       version,
		redis:         redis,
		llmConfigured: llmConfigured,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	redisStatus := "disabled"
	if h.redis != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.redis.Ping(pingCtx); err != nil {
			redisStatus = "down"
		} else {
			redisStatus = "up"
		}
	}

	llmStatus := "disabled"
	if h.llmConfigured {
		llmStatus = "configured"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Redis:     redisStatus,
		LLM:       llmStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
