package domain

import (
	"strings"
	"time"

	estdomain "github.com/buildwise/buildwise-backend/internal/estimation/domain"
)

// Request defaults applied when a field is absent.
const (
	DefaultArea     = 1000
	DefaultFloors   = 1
	DefaultType     = "Residential"
	DefaultBudget   = "Standard"
	DefaultTimeline = "Standard"
	DefaultCountry  = "India"
	DefaultCurrency = "INR"

	TimelineFastTrack = "Fast Track"
)

// ProjectRequest is the plan generation input. Budget carries the quality tier.
type ProjectRequest struct {
	Area     FlexFloat `json:"area"`
	Floors   FlexInt   `json:"floors"`
	Type     string    `json:"type"`
	Budget   string    `json:"budget"`
	Timeline string    `json:"timeline"`
	Country  string    `json:"country"`
	Currency string    `json:"currency"`
}

// NewProjectRequest returns a request with every default set. Decoding JSON
// into it keeps defaults for absent keys.
func NewProjectRequest() ProjectRequest {
	return ProjectRequest{
		Area:     DefaultArea,
		Floors:   DefaultFloors,
		Type:     DefaultType,
		Budget:   DefaultBudget,
		Timeline: DefaultTimeline,
		Country:  DefaultCountry,
		Currency: DefaultCurrency,
	}
}

// Normalize trims text fields and fills blank ones with defaults.
func (r *ProjectRequest) Normalize() {
	fill := func(s *string, def string) {
		*s = strings.TrimSpace(*s)
		if *s == "" {
			*s = def
		}
	}
	fill(&r.Type, DefaultType)
	fill(&r.Budget, DefaultBudget)
	fill(&r.Timeline, DefaultTimeline)
	fill(&r.Country, DefaultCountry)
	fill(&r.Currency, DefaultCurrency)
	r.Currency = strings.ToUpper(r.Currency)
}

func (r ProjectRequest) Quality() estdomain.Quality {
	return estdomain.ParseQuality(r.Budget)
}

func (r ProjectRequest) FastTrack() bool {
	return strings.EqualFold(strings.TrimSpace(r.Timeline), TimelineFastTrack)
}

// CostInput converts the request into engine input.
func (r ProjectRequest) CostInput() estdomain.CostInput {
	return estdomain.CostInput{
		AreaSqft:       float64(r.Area),
		Floors:         int(r.Floors),
		Quality:        r.Quality(),
		Country:        r.Country,
		TargetCurrency: r.Currency,
	}
}

type SchedulePhase struct {
	Phase       string  `json:"phase"`
	StartWeek   FlexInt `json:"start_week"`
	EndWeek     FlexInt `json:"end_week"`
	Description string  `json:"description"`
}

type NarrativeCost struct {
	Material FlexInt `json:"material"`
	Labor    FlexInt `json:"labor"`
	Other    FlexInt `json:"other"`
	Total    FlexInt `json:"total"`
}

type NarrativeMaterials struct {
	Cement FlexInt `json:"cement"`
	Steel  FlexInt `json:"steel"`
	Sand   FlexInt `json:"sand"`
	Bricks FlexInt `json:"bricks"`
}

// Narrative is the generated part of a plan. Only these keys are read from
// model output.
type Narrative struct {
	Summary        string             `json:"summary"`
	CostBreakdown  NarrativeCost      `json:"cost_breakdown"`
	Materials      NarrativeMaterials `json:"materials"`
	TimelineWeeks  FlexInt            `json:"timeline_weeks"`
	SchedulePhases []SchedulePhase    `json:"schedule_phases"`
	Risks          StringList         `json:"risks"`
	Optimizations  StringList         `json:"optimizations"`
	WorkersPerDay  FlexText           `json:"workers_per_day"`
}

// Estimate is the deterministic engine output for one request.
type Estimate struct {
	Materials *estdomain.MaterialEstimate
	Cost      *estdomain.CostBreakdown
}

// PlanResponse is the merged plan served to clients. Narrative and cost
// breakdown fields are flattened into one JSON object.
type PlanResponse struct {
	PlanID string `json:"plan_id,omitempty"`
	Narrative
	estdomain.CostBreakdown
	MaterialEstimate estdomain.MaterialEstimate `json:"material_estimate"`
	Cached           bool                       `json:"cached"`
}

// Merge builds the response from the narrative and then assigns every engine
// figure, so generated content never overrides deterministic values.
func Merge(n Narrative, est Estimate) *PlanResponse {
	resp := &PlanResponse{Narrative: n}
	if est.Cost != nil {
		resp.CostBreakdown = *est.Cost
	}
	if est.Materials != nil {
		resp.MaterialEstimate = *est.Materials
	}
	return resp
}

// Plan is what the cache keeps for a generated plan. Engine figures are not
// stored; they are recomputed from Request when the plan is read back.
type Plan struct {
	PlanID    string         `json:"plan_id"`
	Request   ProjectRequest `json:"request"`
	Narrative Narrative      `json:"narrative"`
	Model     string         `json:"model"`
	CreatedAt time.Time      `json:"created_at"`
}
