package costcal

import (
	"math"

	"github.com/buildwise/buildwise-backend/internal/estimation/domain"
	"github.com/shopspring/decimal"
)

// Approximate consumption per sqft of built-up area.
var (
	cementBagsPerSqft    = decimal.RequireFromString("0.45")
	steelKgPerSqft       = decimal.RequireFromString("4")
	sandTonsPerSqft      = decimal.RequireFromString("0.081")
	aggregateTonsPerSqft = decimal.RequireFromString("0.06")
	bricksPerSqft        = decimal.RequireFromString("8")

	// largest coefficient above; bounds every derived quantity.
	maxPerSqft = bricksPerSqft
)

var (
	maxWhole = decimal.NewFromInt(math.MaxInt64)
	minWhole = decimal.NewFromInt(math.MinInt64)
)

// BuiltUpArea counts the ground floor plus each additional floor once.
func BuiltUpArea(areaSqft float64, floors int) (decimal.Decimal, error) {
	if math.IsNaN(areaSqft) || math.IsInf(areaSqft, 0) || areaSqft <= 0 {
		return decimal.Zero, domain.NewInvalidInputError("area", "area must be a positive number of sqft, got %v", areaSqft)
	}
	if floors < 0 {
		return decimal.Zero, domain.NewInvalidInputError("floors", "floors must not be negative, got %d", floors)
	}
	builtUp := decimal.NewFromFloat(areaSqft).Mul(decimal.NewFromInt(int64(floors) + 1))
	if builtUp.Mul(maxPerSqft).GreaterThan(maxWhole) {
		return decimal.Zero, domain.NewInvalidInputError("area", "built-up area of %s sqft is too large", builtUp.String())
	}
	return builtUp, nil
}

// EstimateMaterials returns quantities of the core materials for the project.
// Quantities are truncated to whole units.
func EstimateMaterials(areaSqft float64, floors int) (*domain.MaterialEstimate, error) {
	builtUp, err := BuiltUpArea(areaSqft, floors)
	if err != nil {
		return nil, err
	}
	return materialsFor(builtUp), nil
}

func materialsFor(builtUp decimal.Decimal) *domain.MaterialEstimate {
	area, _ := builtUp.Float64()
	return &domain.MaterialEstimate{
		CementBags:           quantity(builtUp, cementBagsPerSqft),
		SteelKg:              quantity(builtUp, steelKgPerSqft),
		SandTons:             quantity(builtUp, sandTonsPerSqft),
		AggregateTons:        quantity(builtUp, aggregateTonsPerSqft),
		Bricks:               quantity(builtUp, bricksPerSqft),
		TotalBuiltUpAreaSqft: area,
	}
}

func quantity(builtUp, perSqft decimal.Decimal) int64 {
	return builtUp.Mul(perSqft).Floor().IntPart()
}

// whole truncates d toward zero. Figures outside the int64 range are
// rejected instead of wrapping.
func whole(d decimal.Decimal) (int64, error) {
	t := d.Truncate(0)
	if t.GreaterThan(maxWhole) || t.LessThan(minWhole) {
		return 0, domain.NewInvalidInputError("area", "derived amount %s is too large for this area", t.String())
	}
	return t.IntPart(), nil
}
