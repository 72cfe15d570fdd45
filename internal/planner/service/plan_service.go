package service

import (
	"context"
	"errors"
	"time"

	"github.com/buildwise/buildwise-backend/internal/estimation/costcal"
	"github.com/buildwise/buildwise-backend/internal/logging"
	"github.com/buildwise/buildwise-backend/internal/planner/domain"
	"github.com/buildwise/buildwise-backend/internal/planner/llm"
)

// Generator produces narrative JSON from chat messages.
type Generator interface {
	CompleteJSON(ctx context.Context, messages []llm.Message) (string, error)
	Configured() bool
	Model() string
}

// Cache stores generated plans.
type Cache interface {
	Save(ctx context.Context, plan *domain.Plan) error
	GetByID(ctx context.Context, planID string) (*domain.Plan, error)
	GetByRequest(ctx context.Context, req domain.ProjectRequest, model string) (*domain.Plan, error)
}

// PlanService combines engine estimates with generated narratives.
type PlanService struct {
	calc      *costcal.Calculator
	generator Generator
	cache     Cache
	metrics   *Metrics
	timeout   time.Duration
}

// NewPlanService creates a PlanService. cache may be nil, which disables
// caching and plan lookup.
func NewPlanService(calc *costcal.Calculator, generator Generator, cache Cache, metrics *Metrics, timeout time.Duration) *PlanService {
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &PlanService{
		calc:      calc,
		generator: generator,
		cache:     cache,
		metrics:   metrics,
		timeout:   timeout,
	}
}

func (s *PlanService) Metrics() *Metrics { return s.metrics }

// Estimate runs the deterministic engine for a request.
func (s *PlanService) Estimate(ctx context.Context, req domain.ProjectRequest) (domain.Estimate, error) {
	in := req.CostInput()

	materials, err := costcal.EstimateMaterials(in.AreaSqft, in.Floors)
	if err != nil {
		return domain.Estimate{}, err
	}
	cost, err := s.calc.Compute(in)
	if err != nil {
		return domain.Estimate{}, err
	}

	if cost.CountryFallback {
		logging.FromContext(ctx).LogWarnf("estimate",
			"country %q is not supported, using %s rates", req.Country, cost.RateProfile)
	}
	s.metrics.RecordEstimate()
	return domain.Estimate{Materials: materials, Cost: cost}, nil
}

// GeneratePlan returns a merged plan for req. Engine errors are returned
// before the model is contacted.
func (s *PlanService) GeneratePlan(ctx context.Context, req domain.ProjectRequest) (*domain.PlanResponse, error) {
	logger := logging.FromContext(ctx)
	req.Normalize()

	est, err := s.Estimate(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		plan, err := s.cache.GetByRequest(ctx, req, s.generator.Model())
		switch {
		case err == nil:
			s.metrics.recordCache(true)
			resp := domain.Merge(plan.Narrative, est)
			resp.PlanID = plan.PlanID
			resp.Cached = true
			return resp, nil
		case errors.Is(err, domain.ErrPlanNotFound):
			s.metrics.recordCache(false)
		default:
			logger.LogWarnf("generate_plan", "plan cache lookup failed: %v", err)
		}
	}

	if !s.generator.Configured() {
		return nil, domain.ErrLLMNotConfigured
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	content, err := s.generator.CompleteJSON(callCtx, BuildMessages(req, est))
	s.metrics.recordLLMCall(time.Since(start), err)
	if err != nil {
		logger.LogError("generate_plan", err)
		return nil, err
	}

	narrative, err := ParseNarrative(content)
	if err != nil {
		s.metrics.recordNarrativeFailure()
		logger.LogError("generate_plan", err)
		return nil, err
	}

	plan := &domain.Plan{
		Request:   req,
		Narrative: narrative,
		Model:     s.generator.Model(),
	}
	if s.cache != nil {
		if err := s.cache.Save(ctx, plan); err != nil {
			logger.LogWarnf("generate_plan", "failed to cache plan: %v", err)
			plan.PlanID = ""
		}
	}

	resp := domain.Merge(narrative, est)
	resp.PlanID = plan.PlanID
	logger.LogInfof("generate_plan", "plan generated: id=%s total=%d %s",
		plan.PlanID, resp.TotalEstimatedCost, resp.Currency)
	return resp, nil
}

// GetPlan reads a cached plan and recomputes its engine figures.
func (s *PlanService) GetPlan(ctx context.Context, planID string) (*domain.PlanResponse, error) {
	if s.cache == nil {
		return nil, domain.ErrPlanNotFound
	}

	plan, err := s.cache.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	est, err := s.Estimate(ctx, plan.Request)
	if err != nil {
		return nil, err
	}

	resp := domain.Merge(plan.Narrative, est)
	resp.PlanID = plan.PlanID
	resp.Cached = true
	return resp, nil
}
