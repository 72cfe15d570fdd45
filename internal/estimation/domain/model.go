package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Quality is the construction grade. It is a closed set; free text is
// normalised by ParseQuality.
type Quality int

const (
	QualityStandard Quality = iota
	QualityPremium
	QualityBudget
)

// ParseQuality maps user input onto a tier. Matching is case-insensitive and
// anything unrecognised is Standard.
func ParseQuality(s string) Quality {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "premium":
		return QualityPremium
	case "budget", "low cost", "low-cost", "lowcost":
		return QualityBudget
	default:
		return QualityStandard
	}
}

func (q Quality) String() string {
	switch q {
	case QualityPremium:
		return "premium"
	case QualityBudget:
		return "budget"
	default:
		return "standard"
	}
}

func (q Quality) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.String())
}

func (q *Quality) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*q = ParseQuality(s)
	return nil
}

// RateProfile holds per-unit prices and wages for one country, in its local currency.
type RateProfile struct {
	Currency             string          `json:"currency" yaml:"currency"`
	BasicCostPerSqft     decimal.Decimal `json:"basic_cost_per_sqft" yaml:"basic_cost_per_sqft"`
	PremiumCostPerSqft   decimal.Decimal `json:"premium_cost_per_sqft" yaml:"premium_cost_per_sqft"`
	CementBagPrice       decimal.Decimal `json:"cement_bag_price" yaml:"cement_bag_price"`
	SteelKgPrice         decimal.Decimal `json:"steel_kg_price" yaml:"steel_kg_price"`
	SandTonPrice         decimal.Decimal `json:"sand_ton_price" yaml:"sand_ton_price"`
	AggregateTonPrice    decimal.Decimal `json:"aggregate_ton_price" yaml:"aggregate_ton_price"`
	BrickPrice           decimal.Decimal `json:"brick_price" yaml:"brick_price"`
	SkilledWage          decimal.Decimal `json:"skilled_wage" yaml:"skilled_wage"`
	UnskilledWage        decimal.Decimal `json:"unskilled_wage" yaml:"unskilled_wage"`
	WorkerEfficiencySqft decimal.Decimal `json:"worker_efficiency_sqft" yaml:"worker_efficiency_sqft"`
}

// RateFor resolves the per-sqft construction rate for a quality tier.
func (p RateProfile) RateFor(q Quality) decimal.Decimal {
	switch q {
	case QualityPremium:
		return p.PremiumCostPerSqft
	case QualityBudget:
		return p.BasicCostPerSqft.Mul(BudgetRateFactor)
	default:
		return p.BasicCostPerSqft
	}
}

// BudgetRateFactor scales the basic rate for budget construction.
var BudgetRateFactor = decimal.RequireFromString("0.8")

// MaterialEstimate is the quantity take-off for a built-up area.
type MaterialEstimate struct {
	CementBags           int64   `json:"cement_bags"`
	SteelKg              int64   `json:"steel_kg"`
	SandTons             int64   `json:"sand_tons"`
	AggregateTons        int64   `json:"aggregate_tons"`
	Bricks               int64   `json:"bricks"`
	TotalBuiltUpAreaSqft float64 `json:"total_built_up_area_sqft"`
}

// MaterialCosts is the per-material cost map, in the target currency.
type MaterialCosts struct {
	Cement               int64 `json:"cement"`
	Steel                int64 `json:"steel"`
	Sand                 int64 `json:"sand"`
	Aggregate            int64 `json:"aggregate"`
	Bricks               int64 `json:"bricks"`
	FinishingAndFittings int64 `json:"finishing_and_fittings"`
}

// CrewCost describes one class of workers.
type CrewCost struct {
	Workforce int64 `json:"workforce"`
	Duration  int64 `json:"duration"`
	DailyWage int64 `json:"daily_wage"`
	TotalCost int64 `json:"total_cost"`
}

type LaborBreakdown struct {
	Skilled        CrewCost `json:"skilled"`
	Unskilled      CrewCost `json:"unskilled"`
	TotalDays      int64    `json:"total_days"`
	TotalWorkforce int64    `json:"total_workforce"`
	TotalLaborCost int64    `json:"total_labor_cost"`
}

// SummaryBreakdown is the material/labor/other split. Its parts are derived
// independently and do not necessarily add up to the total cost.
type SummaryBreakdown struct {
	Material int64 `json:"material"`
	Labor    int64 `json:"labor"`
	Other    int64 `json:"other"`
}

// CostBreakdown is the full deterministic estimate. The JSON keys are
// consumed by the dashboard and must not change.
type CostBreakdown struct {
	TotalEstimatedCost    int64            `json:"total_estimated_cost"`
	Currency              string           `json:"currency"`
	Country               string           `json:"country"`
	MaterialCostBreakdown MaterialCosts    `json:"material_cost_breakdown"`
	LaborBreakdown        LaborBreakdown   `json:"labor_breakdown"`
	ArchitectFees         int64            `json:"architect_fees"`
	Contingency           int64            `json:"contingency"`
	SummaryBreakdown      SummaryBreakdown `json:"summary_breakdown"`

	// RateProfile names the profile actually used; it differs from Country
	// when the requested country was not supported.
	RateProfile     string  `json:"rate_profile"`
	CountryFallback bool    `json:"country_fallback"`
	Quality         Quality `json:"quality"`
	BuiltUpAreaSqft float64 `json:"built_up_area_sqft"`
}

// CostInput is the boundary input for a cost computation.
type CostInput struct {
	AreaSqft       float64 `json:"area"`
	Floors         int     `json:"floors"`
	Quality        Quality `json:"quality"`
	Country        string  `json:"country"`
	TargetCurrency string  `json:"target_currency"`
}
