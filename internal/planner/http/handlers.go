package http

import (
	"errors"
	"net/http"

	estimationhttp "github.com/buildwise/buildwise-backend/internal/estimation/http"
	"github.com/buildwise/buildwise-backend/internal/planner/domain"
	"github.com/buildwise/buildwise-backend/internal/planner/service"
	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for project plans
type Handler struct {
	plans *service.PlanService
}

// New creates a new Handler
func New(plans *service.PlanService) *Handler {
	return &Handler{plans: plans}
}

// CreatePlan computes the estimate for a project and attaches a generated plan
func (h *Handler) CreatePlan(c *gin.Context) {
	req := domain.NewProjectRequest()
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "code": "INVALID_INPUT"})
			return
		}
	}

	resp, err := h.plans.GeneratePlan(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetPlan returns a previously generated plan
func (h *Handler) GetPlan(c *gin.Context) {
	planID := c.Param("id")
	if planID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plan ID is required", "code": "INVALID_INPUT"})
		return
	}

	resp, err := h.plans.GetPlan(c.Request.Context(), planID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Metrics reports plan generation counters
func (h *Handler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.plans.Metrics().Snapshot())
}

func respondError(c *gin.Context, err error) {
	if _, _, ok := estimationhttp.ErrorStatus(err); ok {
		estimationhttp.RespondError(c, err)
		return
	}

	switch {
	case errors.Is(err, domain.ErrPlanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found", "code": "PLAN_NOT_FOUND"})
	case errors.Is(err, domain.ErrLLMNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "code": "LLM_NOT_CONFIGURED"})
	case errors.Is(err, domain.ErrNarrativeParse):
		c.JSON(http.StatusBadGateway, gin.H{"error": "language model returned an unreadable plan", "code": "NARRATIVE_PARSE"})
	case errors.Is(err, domain.ErrModelFailure):
		c.JSON(http.StatusBadGateway, gin.H{"error": "language model request failed", "code": "MODEL_FAILURE"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate plan", "code": "INTERNAL"})
	}
}
