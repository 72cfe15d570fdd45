package http

import "github.com/gin-gonic/gin"

// Register registers the versioned plan routes
func (h *Handler) Register(rg gin.IRoutes) {
	rg.POST("/plans", h.CreatePlan)
	rg.GET("/plans/:id", h.GetPlan)
}

// RegisterLegacy registers the original calculate endpoint
func (h *Handler) RegisterLegacy(rg gin.IRoutes) {
	rg.POST("/calculate", h.CreatePlan)
}

// RegisterMetrics registers the metrics endpoint
func (h *Handler) RegisterMetrics(rg gin.IRoutes) {
	rg.GET("/metrics", h.Metrics)
}
