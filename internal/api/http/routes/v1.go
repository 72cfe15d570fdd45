package routes

import (
	httpapi "github.com/buildwise/buildwise-backend/internal/api/http"
	"github.com/buildwise/buildwise-backend/internal/api/http/middleware"
	estimationhttp "github.com/buildwise/buildwise-backend/internal/estimation/http"
	plannerhttp "github.com/buildwise/buildwise-backend/internal/planner/http"

	"github.com/gin-gonic/gin"
)

type V1Deps struct {
	APIKey string

	Health     *httpapi.HealthHandler
	Estimation *estimationhttp.Handler
	Planner    *plannerhttp.Handler
}

// RegisterV1 mounts health checks, the engine endpoints and the plan
// endpoints. Plan routes require the API key when one is configured.
func RegisterV1(r *gin.Engine, dep V1Deps) {
	dep.Health.RegisterRoutes(r)

	requireKey := middleware.APIKeyMiddleware(dep.APIKey)

	legacy := r.Group("/api")
	legacy.Use(requireKey)
	dep.Planner.RegisterLegacy(legacy)

	api := r.Group("/api/v1")
	dep.Estimation.Register(api)
	dep.Planner.RegisterMetrics(api)

	plans := api.Group("")
	plans.Use(requireKey)
	dep.Planner.Register(plans)
}
