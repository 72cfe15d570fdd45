package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/buildwise/buildwise-backend/internal/planner/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	planKeyPrefix    = "buildwise:plan:"    // Plan data: buildwise:plan:{plan_id}
	requestKeyPrefix = "buildwise:request:" // Request fingerprint -> plan_id
	defaultPlanTTL   = 24 * time.Hour
)

// PlanRepository caches generated plans in Redis
type PlanRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPlanRepository creates a new PlanRepository. A non-positive ttl uses 24h.
func NewPlanRepository(client *redis.Client, ttl time.Duration) *PlanRepository {
	if ttl <= 0 {
		ttl = defaultPlanTTL
	}
	return &PlanRepository{client: client, ttl: ttl}
}

// Save stores a plan and indexes it by its request fingerprint
func (r *PlanRepository) Save(ctx context.Context, plan *domain.Plan) error {
	if plan.PlanID == "" {
		plan.PlanID = uuid.New().String()
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	fingerprint, err := Fingerprint(plan.Request, plan.Model)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.planKey(plan.PlanID), data, r.ttl)
	pipe.Set(ctx, r.requestKey(fingerprint), plan.PlanID, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}

// GetByID retrieves a plan by its ID
func (r *PlanRepository) GetByID(ctx context.Context, planID string) (*domain.Plan, error) {
	data, err := r.client.Get(ctx, r.planKey(planID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	var plan domain.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	return &plan, nil
}

// GetByRequest finds the cached plan generated for an identical request and model
func (r *PlanRepository) GetByRequest(ctx context.Context, req domain.ProjectRequest, model string) (*domain.Plan, error) {
	fingerprint, err := Fingerprint(req, model)
	if err != nil {
		return nil, err
	}

	planID, err := r.client.Get(ctx, r.requestKey(fingerprint)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan id for request: %w", err)
	}

	return r.GetByID(ctx, planID)
}

// Ping checks the Redis connection
func (r *PlanRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Fingerprint identifies a normalised request for a given model.
func Fingerprint(req domain.ProjectRequest, model string) (string, error) {
	b, err := json.Marshal(struct {
		Request domain.ProjectRequest `json:"request"`
		Model   string                `json:"model"`
	}{req, model})
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint request: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

func (r *PlanRepository) planKey(planID string) string {
	return fmt.Sprintf("%s%s", planKeyPrefix, planID)
}

func (r *PlanRepository) requestKey(fingerprint string) string {
	return fmt.Sprintf("%s%s", requestKeyPrefix, fingerprint)
}
