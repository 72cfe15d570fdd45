package bootstrap

import (
	"time"

	httpapi "github.com/buildwise/buildwise-backend/internal/api/http"
	"github.com/buildwise/buildwise-backend/internal/api/http/middleware"
	"github.com/buildwise/buildwise-backend/internal/api/http/routes"
	"github.com/buildwise/buildwise-backend/internal/estimation/costcal"
	estimationhttp "github.com/buildwise/buildwise-backend/internal/estimation/http"
	plannerhttp "github.com/buildwise/buildwise-backend/internal/planner/http"
	"github.com/buildwise/buildwise-backend/internal/planner/llm"
	"github.com/buildwise/buildwise-backend/internal/planner/repository"
	"github.com/buildwise/buildwise-backend/internal/planner/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string
	APIKey      string

	Calculator *costcal.Calculator
	LLM        *llm.Client
	LLMTimeout time.Duration

	// Redis is nil when the plan cache is disabled.
	Redis   *redis.Client
	PlanTTL time.Duration
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(dep.CORSOrigins))
	r.Use(middleware.RequestIDMiddleware())

	if dep.LLM == nil {
		dep.LLM = llm.New(llm.Options{})
	}
	metrics := service.NewMetrics()

	var (
		cache  service.Cache
		pinger httpapi.Pinger
	)
	if dep.Redis != nil {
		repo := repository.NewPlanRepository(dep.Redis, dep.PlanTTL)
		cache = repo
		pinger = repo
	}

	plans := service.NewPlanService(dep.Calculator, dep.LLM, cache, metrics, dep.LLMTimeout)

	routes.RegisterV1(r, routes.V1Deps{
		APIKey:     dep.APIKey,
		Health:     httpapi.NewHealthHandler(dep.ServiceName, dep.Version, pinger, dep.LLM.Configured()),
		Estimation: estimationhttp.New(dep.Calculator, metrics),
		Planner:    plannerhttp.New(plans),
	})

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.APIKeyHeader, middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg)
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cors.New(cfg)
	}

	cfg.AllowOrigins = origins
	return cors.New(cfg)
}
