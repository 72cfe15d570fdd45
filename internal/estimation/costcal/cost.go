package costcal

import (
	"strings"

	"github.com/buildwise/buildwise-backend/internal/estimation/domain"
	"github.com/buildwise/buildwise-backend/internal/estimation/rates"
	"github.com/shopspring/decimal"
)

// Budget shares applied to the total project cost. The local material/labor
// split and the fee/contingency/other shares are independent derivations and
// are not reconciled to 100%.
var (
	materialShare    = decimal.RequireFromString("0.60")
	laborShare       = decimal.RequireFromString("0.25")
	architectShare   = decimal.RequireFromString("0.05")
	contingencyShare = decimal.RequireFromString("0.10")
	otherShare       = decimal.RequireFromString("0.15")
)

const (
	minWorkforce       = 5
	minSkilled         = 1
	skilledWorkerRatio = 3
)

// Calculator produces cost breakdowns from the rate table. It holds no
// mutable state and is safe for concurrent use.
type Calculator struct {
	table     *rates.Table
	converter *Converter
}

func NewCalculator(table *rates.Table) *Calculator {
	return &Calculator{
		table:     table,
		converter: NewConverter(table),
	}
}

func (c *Calculator) Table() *rates.Table { return c.table }

func (c *Calculator) Converter() *Converter { return c.converter }

type workforce struct {
	recommended int64
	skilled     int64
	unskilled   int64
}

// planWorkforce sizes the crew. Skilled workers are a third of the crew,
// at least one; if that ever exceeds the crew, unskilled is held at zero.
func planWorkforce(builtUp, efficiency decimal.Decimal) (workforce, error) {
	recommended, err := whole(builtUp.Div(efficiency).Floor())
	if err != nil {
		return workforce{}, err
	}
	if recommended < minWorkforce {
		recommended = minWorkforce
	}

	skilled := recommended / skilledWorkerRatio
	if skilled < minSkilled {
		skilled = minSkilled
	}

	unskilled := recommended - skilled
	if unskilled < 0 {
		skilled = recommended
		unskilled = 0
	}

	return workforce{recommended: recommended, skilled: skilled, unskilled: unskilled}, nil
}

// Compute builds the full cost breakdown for a project. Nothing is returned
// alongside an error.
func (c *Calculator) Compute(in domain.CostInput) (*domain.CostBreakdown, error) {
	builtUp, err := BuiltUpArea(in.AreaSqft, in.Floors)
	if err != nil {
		return nil, err
	}

	target := strings.TrimSpace(in.TargetCurrency)
	if target == "" {
		return nil, domain.NewInvalidInputError("target_currency", "target currency is required")
	}
	if _, err := c.table.Rate(target); err != nil {
		return nil, err
	}

	profile, resolved, fallback := c.table.Profile(in.Country)
	local := profile.Currency

	totalLocal := builtUp.Mul(profile.RateFor(in.Quality))

	qty := materialsFor(builtUp)
	cementLocal := decimal.NewFromInt(qty.CementBags).Mul(profile.CementBagPrice)
	steelLocal := decimal.NewFromInt(qty.SteelKg).Mul(profile.SteelKgPrice)
	sandLocal := decimal.NewFromInt(qty.SandTons).Mul(profile.SandTonPrice)
	aggregateLocal := decimal.NewFromInt(qty.AggregateTons).Mul(profile.AggregateTonPrice)
	bricksLocal := decimal.NewFromInt(qty.Bricks).Mul(profile.BrickPrice)

	materialBudgetLocal := totalLocal.Mul(materialShare)
	coreLocal := decimal.Sum(cementLocal, steelLocal, sandLocal, aggregateLocal, bricksLocal)
	// May be negative when core materials exceed the material budget.
	finishing, err := whole(materialBudgetLocal.Sub(coreLocal))
	if err != nil {
		return nil, err
	}
	finishingLocal := decimal.NewFromInt(finishing)

	laborBudgetLocal := totalLocal.Mul(laborShare)

	crew, err := planWorkforce(builtUp, profile.WorkerEfficiencySqft)
	if err != nil {
		return nil, err
	}
	skilledCount := decimal.NewFromInt(crew.skilled)
	unskilledCount := decimal.NewFromInt(crew.unskilled)

	dailyTeamLocal := skilledCount.Mul(profile.SkilledWage).Add(unskilledCount.Mul(profile.UnskilledWage))
	if !dailyTeamLocal.IsPositive() {
		return nil, domain.NewDegenerateWorkforceError(crew.skilled, crew.unskilled)
	}
	duration, err := whole(laborBudgetLocal.Div(dailyTeamLocal).Floor())
	if err != nil {
		return nil, err
	}
	days := decimal.NewFromInt(duration)

	conv := newBatch(c.converter, local, target)

	total := conv.of(totalLocal)
	materials := domain.MaterialCosts{
		Cement:               conv.of(cementLocal),
		Steel:                conv.of(steelLocal),
		Sand:                 conv.of(sandLocal),
		Aggregate:            conv.of(aggregateLocal),
		Bricks:               conv.of(bricksLocal),
		FinishingAndFittings: conv.of(finishingLocal),
	}
	materialBudget := conv.of(materialBudgetLocal)
	laborBudget := conv.of(laborBudgetLocal)

	labor := domain.LaborBreakdown{
		Skilled: domain.CrewCost{
			Workforce: crew.skilled,
			Duration:  duration,
			DailyWage: conv.of(profile.SkilledWage),
			TotalCost: conv.of(skilledCount.Mul(days).Mul(profile.SkilledWage)),
		},
		Unskilled: domain.CrewCost{
			Workforce: crew.unskilled,
			Duration:  duration,
			DailyWage: conv.of(profile.UnskilledWage),
			TotalCost: conv.of(unskilledCount.Mul(days).Mul(profile.UnskilledWage)),
		},
		TotalDays:      duration,
		TotalWorkforce: crew.recommended,
		TotalLaborCost: laborBudget,
	}
	if conv.err != nil {
		return nil, conv.err
	}

	totalDec := decimal.NewFromInt(total)
	area, _ := builtUp.Float64()

	return &domain.CostBreakdown{
		TotalEstimatedCost:    total,
		Currency:              target,
		Country:               in.Country,
		MaterialCostBreakdown: materials,
		LaborBreakdown:        labor,
		ArchitectFees:         totalDec.Mul(architectShare).IntPart(),
		Contingency:           totalDec.Mul(contingencyShare).IntPart(),
		SummaryBreakdown: domain.SummaryBreakdown{
			Material: materialBudget,
			Labor:    laborBudget,
			Other:    totalDec.Mul(otherShare).IntPart(),
		},
		RateProfile:     resolved,
		CountryFallback: fallback,
		Quality:         in.Quality,
		BuiltUpAreaSqft: area,
	}, nil
}

// batch converts many local figures and remembers the first failure.
type batch struct {
	c        *Converter
	from, to string
	err      error
}

func newBatch(c *Converter, from, to string) *batch {
	return &batch{c: c, from: from, to: to}
}

func (b *batch) of(amount decimal.Decimal) int64 {
	if b.err != nil {
		return 0
	}
	v, err := b.c.toTarget(amount, b.from, b.to)
	if err != nil {
		b.err = err
		return 0
	}
	return v
}
