package http

import "github.com/gin-gonic/gin"

// Register registers the estimation routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/estimate/materials", h.EstimateMaterials)
	rg.POST("/estimate/cost", h.EstimateCost)
	rg.POST("/convert", h.Convert)
	rg.GET("/rates", h.Rates)
}
