package costcal

import (
	"errors"
	"math"
	"testing"

	"github.com/buildwise/buildwise-backend/internal/estimation/domain"
	"github.com/buildwise/buildwise-backend/internal/estimation/rates"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateMaterials(t *testing.T) {
	m, err := EstimateMaterials(1000, 1)
	require.NoError(t, err)

	assert.Equal(t, 2000.0, m.TotalBuiltUpAreaSqft)
	assert.Equal(t, int64(900), m.CementBags)
	assert.Equal(t, int64(8000), m.SteelKg)
	assert.Equal(t, int64(162), m.SandTons)
	assert.Equal(t, int64(120), m.AggregateTons)
	assert.Equal(t, int64(16000), m.Bricks)
}

func TestEstimateMaterials_Truncates(t *testing.T) {
	m, err := EstimateMaterials(333, 0)
	require.NoError(t, err)

	// 333 * 0.45 = 149.85, 333 * 0.081 = 26.973, 333 * 0.06 = 19.98
	assert.Equal(t, int64(149), m.CementBags)
	assert.Equal(t, int64(26), m.SandTons)
	assert.Equal(t, int64(19), m.AggregateTons)
	assert.Equal(t, int64(1332), m.SteelKg)
}

func TestEstimateMaterials_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		area   float64
		floors int
		field  string
	}{
		{"zero area", 0, 1, "area"},
		{"negative area", -10, 1, "area"},
		{"nan area", math.NaN(), 1, "area"},
		{"infinite area", math.Inf(1), 1, "area"},
		{"negative floors", 1000, -1, "floors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := EstimateMaterials(tt.area, tt.floors)
			require.Error(t, err)
			assert.Nil(t, m)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))

			var ee *domain.EstimationError
			require.True(t, errors.As(err, &ee))
			assert.Equal(t, tt.field, ee.Field)
		})
	}
}

func TestBuiltUpAreaAgrees(t *testing.T) {
	calc := NewCalculator(rates.Default())

	for _, area := range []float64{1, 250.5, 1000, 12345.75} {
		for floors := 0; floors <= 4; floors++ {
			want := area * float64(floors+1)

			m, err := EstimateMaterials(area, floors)
			require.NoError(t, err)
			assert.InDelta(t, want, m.TotalBuiltUpAreaSqft, 1e-9)

			b, err := calc.Compute(domain.CostInput{AreaSqft: area, Floors: floors, Country: "India", TargetCurrency: "INR"})
			require.NoError(t, err)
			assert.InDelta(t, want, b.BuiltUpAreaSqft, 1e-9)
		}
	}
}

func TestConvert(t *testing.T) {
	conv := NewConverter(rates.Default())

	t.Run("same currency is exact", func(t *testing.T) {
		for _, code := range []string{"USD", "INR", "EUR", "GBP", "XYZ"} {
			amount := decimal.RequireFromString("1234.5678901234")
			out, err := conv.Convert(amount, code, code)
			require.NoError(t, err)
			assert.True(t, out.Equal(amount))
		}

		f, err := conv.ConvertFloat(0.1, "INR", "INR")
		require.NoError(t, err)
		assert.Equal(t, 0.1, f)
	})

	t.Run("through reference", func(t *testing.T) {
		out, err := conv.Convert(decimal.NewFromInt(8300), "INR", "USD")
		require.NoError(t, err)
		assert.True(t, out.Equal(decimal.NewFromInt(100)), out.String())

		out, err = conv.Convert(decimal.NewFromInt(100), "USD", "EUR")
		require.NoError(t, err)
		assert.True(t, out.Equal(decimal.NewFromInt(92)), out.String())
	})

	t.Run("round trip", func(t *testing.T) {
		codes := []string{"USD", "INR", "EUR", "GBP"}
		for _, a := range codes {
			for _, b := range codes {
				there, err := conv.ConvertFloat(100, a, b)
				require.NoError(t, err)
				back, err := conv.ConvertFloat(there, b, a)
				require.NoError(t, err)
				assert.InDelta(t, 100, back, 1e-9, "%s -> %s", a, b)
			}
		}
	})

	t.Run("unknown currency", func(t *testing.T) {
		_, err := conv.ConvertFloat(100, "INR", "XYZ")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnknownCurrency))

		_, err = conv.ConvertFloat(100, "XYZ", "INR")
		assert.True(t, errors.Is(err, domain.ErrUnknownCurrency))
	})

	t.Run("supported codes only", func(t *testing.T) {
		_, err := conv.ConvertSupported(decimal.NewFromInt(100), "XYZ", "XYZ")
		assert.True(t, errors.Is(err, domain.ErrUnknownCurrency))

		out, err := conv.ConvertSupported(decimal.NewFromInt(100), "GBP", "GBP")
		require.NoError(t, err)
		assert.True(t, out.Equal(decimal.NewFromInt(100)))
	})
}

func TestCompute_IndiaStandard(t *testing.T) {
	calc := NewCalculator(rates.Default())

	b, err := calc.Compute(domain.CostInput{
		AreaSqft:       1000,
		Floors:         1,
		Quality:        domain.QualityStandard,
		Country:        "India",
		TargetCurrency: "INR",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3600000), b.TotalEstimatedCost)
	assert.Equal(t, "INR", b.Currency)
	assert.Equal(t, "India", b.Country)
	assert.Equal(t, "India", b.RateProfile)
	assert.False(t, b.CountryFallback)

	assert.Equal(t, domain.MaterialCosts{
		Cement:               342000,
		Steel:                520000,
		Sand:                 324000,
		Aggregate:            144000,
		Bricks:               160000,
		FinishingAndFittings: 670000,
	}, b.MaterialCostBreakdown)

	assert.Equal(t, domain.LaborBreakdown{
		Skilled:        domain.CrewCost{Workforce: 2, Duration: 195, DailyWage: 800, TotalCost: 312000},
		Unskilled:      domain.CrewCost{Workforce: 6, Duration: 195, DailyWage: 500, TotalCost: 585000},
		TotalDays:      195,
		TotalWorkforce: 8,
		TotalLaborCost: 900000,
	}, b.LaborBreakdown)

	assert.Equal(t, int64(180000), b.ArchitectFees)
	assert.Equal(t, int64(360000), b.Contingency)
	assert.Equal(t, domain.SummaryBreakdown{Material: 2160000, Labor: 900000, Other: 540000}, b.SummaryBreakdown)
}

func TestCompute_ConvertsToTarget(t *testing.T) {
	calc := NewCalculator(rates.Default())

	b, err := calc.Compute(domain.CostInput{AreaSqft: 1000, Floors: 1, Country: "India", TargetCurrency: "USD"})
	require.NoError(t, err)

	// 3,600,000 INR / 83
	assert.Equal(t, int64(43373), b.TotalEstimatedCost)
	assert.Equal(t, "USD", b.Currency)
	assert.Equal(t, int64(2168), b.ArchitectFees)
	assert.Equal(t, int64(4337), b.Contingency)
	assert.Equal(t, int64(6505), b.SummaryBreakdown.Other)
	// 800 / 83 and 500 / 83 truncated
	assert.Equal(t, int64(9), b.LaborBreakdown.Skilled.DailyWage)
	assert.Equal(t, int64(6), b.LaborBreakdown.Unskilled.DailyWage)
	assert.Equal(t, int64(195), b.LaborBreakdown.TotalDays)
	// 670,000 / 83 = 8072.28...
	assert.Equal(t, int64(8072), b.MaterialCostBreakdown.FinishingAndFittings)
}

func TestCompute_USAStandard(t *testing.T) {
	calc := NewCalculator(rates.Default())

	b, err := calc.Compute(domain.CostInput{AreaSqft: 1000, Floors: 1, Country: "USA", TargetCurrency: "USD"})
	require.NoError(t, err)

	assert.Equal(t, int64(300000), b.TotalEstimatedCost)
	assert.Equal(t, int64(12800), b.MaterialCostBreakdown.Bricks)
	assert.Equal(t, int64(134050), b.MaterialCostBreakdown.FinishingAndFittings)
	// workforce max(5, 2000/400) = 5, skilled 1, unskilled 4
	assert.Equal(t, int64(5), b.LaborBreakdown.TotalWorkforce)
	assert.Equal(t, int64(1), b.LaborBreakdown.Skilled.Workforce)
	assert.Equal(t, int64(4), b.LaborBreakdown.Unskilled.Workforce)
	// 75,000 / (300 + 4*180)
	assert.Equal(t, int64(73), b.LaborBreakdown.TotalDays)
}

func TestCompute_QualityOrdering(t *testing.T) {
	calc := NewCalculator(rates.Default())

	for _, country := range []string{"India", "USA"} {
		total := func(q domain.Quality) int64 {
			b, err := calc.Compute(domain.CostInput{AreaSqft: 1500, Floors: 2, Quality: q, Country: country, TargetCurrency: "EUR"})
			require.NoError(t, err)
			return b.TotalEstimatedCost
		}

		premium := total(domain.QualityPremium)
		standard := total(domain.QualityStandard)
		budget := total(domain.QualityBudget)

		assert.Greater(t, premium, standard, country)
		assert.Greater(t, standard, budget, country)
	}
}

func TestCompute_BudgetRate(t *testing.T) {
	calc := NewCalculator(rates.Default())

	b, err := calc.Compute(domain.CostInput{AreaSqft: 1000, Floors: 1, Quality: domain.ParseQuality("Low Cost"), Country: "India", TargetCurrency: "INR"})
	require.NoError(t, err)
	assert.Equal(t, int64(2880000), b.TotalEstimatedCost)
	assert.Equal(t, domain.QualityBudget, b.Quality)
}

func TestCompute_WorkforceInvariant(t *testing.T) {
	calc := NewCalculator(rates.Default())

	for _, area := range []float64{0.5, 10, 999, 1000, 5000, 48000, 250000} {
		for _, country := range []string{"India", "USA"} {
			b, err := calc.Compute(domain.CostInput{AreaSqft: area, Floors: 1, Country: country, TargetCurrency: "USD"})
			require.NoError(t, err)

			l := b.LaborBreakdown
			assert.Equal(t, l.TotalWorkforce, l.Skilled.Workforce+l.Unskilled.Workforce)
			assert.GreaterOrEqual(t, l.Skilled.Workforce, int64(1))
			assert.GreaterOrEqual(t, l.Unskilled.Workforce, int64(0))
			assert.GreaterOrEqual(t, l.TotalWorkforce, int64(5))
		}
	}
}

func TestCompute_CountryFallback(t *testing.T) {
	calc := NewCalculator(rates.Default())

	in := domain.CostInput{AreaSqft: 1200, Floors: 2, Quality: domain.QualityPremium, Country: "India", TargetCurrency: "GBP"}
	india, err := calc.Compute(in)
	require.NoError(t, err)

	in.Country = "Atlantis"
	atlantis, err := calc.Compute(in)
	require.NoError(t, err)

	assert.True(t, atlantis.CountryFallback)
	assert.Equal(t, "India", atlantis.RateProfile)
	assert.Equal(t, "Atlantis", atlantis.Country)

	atlantis.Country = india.Country
	atlantis.CountryFallback = false
	assert.Equal(t, india, atlantis)
}

func TestCompute_UnknownCurrency(t *testing.T) {
	calc := NewCalculator(rates.Default())

	b, err := calc.Compute(domain.CostInput{AreaSqft: 1000, Floors: 1, Country: "India", TargetCurrency: "XYZ"})
	require.Error(t, err)
	assert.Nil(t, b)
	assert.True(t, errors.Is(err, domain.ErrUnknownCurrency))

	_, err = calc.Compute(domain.CostInput{AreaSqft: 1000, Floors: 1, Country: "India"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCompute_InvalidInput(t *testing.T) {
	calc := NewCalculator(rates.Default())

	_, err := calc.Compute(domain.CostInput{AreaSqft: -5, Floors: 1, Country: "India", TargetCurrency: "INR"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = calc.Compute(domain.CostInput{AreaSqft: 100, Floors: -2, Country: "India", TargetCurrency: "INR"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func customTable(t *testing.T, mutate func(p *domain.RateProfile)) *rates.Table {
	t.Helper()

	india, _, _ := rates.Default().Profile("India")
	mutate(&india)

	tbl, err := rates.NewTable("USD", "India",
		map[string]domain.RateProfile{"India": india},
		map[string]decimal.Decimal{"USD": decimal.NewFromInt(1), "INR": decimal.NewFromInt(83)},
	)
	require.NoError(t, err)
	return tbl
}

func TestCompute_DegenerateWorkforce(t *testing.T) {
	tbl := customTable(t, func(p *domain.RateProfile) {
		p.SkilledWage = decimal.Zero
		p.UnskilledWage = decimal.Zero
	})

	b, err := NewCalculator(tbl).Compute(domain.CostInput{AreaSqft: 1000, Floors: 1, Country: "India", TargetCurrency: "INR"})
	require.Error(t, err)
	assert.Nil(t, b)
	assert.True(t, errors.Is(err, domain.ErrDegenerateWorkforce))

	var ee *domain.EstimationError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, domain.KindDegenerateWorkforce, ee.Kind)
}

func TestCompute_NegativeFinishing(t *testing.T) {
	tbl := customTable(t, func(p *domain.RateProfile) {
		p.CementBagPrice = decimal.NewFromInt(5000)
	})

	b, err := NewCalculator(tbl).Compute(domain.CostInput{AreaSqft: 1000, Floors: 1, Country: "India", TargetCurrency: "INR"})
	require.NoError(t, err)

	// 2,160,000 - (4,500,000 + 520,000 + 324,000 + 144,000 + 160,000)
	assert.Equal(t, int64(-3488000), b.MaterialCostBreakdown.FinishingAndFittings)
}

func TestPlanWorkforce(t *testing.T) {
	eff := decimal.NewFromInt(250)

	tests := []struct {
		builtUp                       int64
		recommended, skilled, unskill int64
	}{
		{100, 5, 1, 4},
		{1250, 5, 1, 4},
		{1500, 6, 2, 4},
		{2000, 8, 2, 6},
		{7500, 30, 10, 20},
	}

	for _, tt := range tests {
		w, err := planWorkforce(decimal.NewFromInt(tt.builtUp), eff)
		require.NoError(t, err)
		assert.Equal(t, tt.recommended, w.recommended, "built-up %d", tt.builtUp)
		assert.Equal(t, tt.skilled, w.skilled, "built-up %d", tt.builtUp)
		assert.Equal(t, tt.unskill, w.unskilled, "built-up %d", tt.builtUp)
	}
}

func TestEstimateMaterials_AreaTooLarge(t *testing.T) {
	_, err := EstimateMaterials(1e18, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var ee *domain.EstimationError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "area", ee.Field)
}

func TestCompute_AreaTooLarge(t *testing.T) {
	calc := NewCalculator(rates.Default())

	tests := []struct {
		name     string
		area     float64
		country  string
		currency string
	}{
		{"local currency", 1e16, "India", "INR"},
		{"converted up", 1e15, "USA", "INR"},
		{"past quantity bound", 1e18, "India", "INR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := calc.Compute(domain.CostInput{
				AreaSqft:       tt.area,
				Floors:         1,
				Quality:        domain.QualityStandard,
				Country:        tt.country,
				TargetCurrency: tt.currency,
			})
			require.Error(t, err)
			assert.Nil(t, b)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
}

func TestCompute_LargeAreaStaysPositive(t *testing.T) {
	calc := NewCalculator(rates.Default())

	b, err := calc.Compute(domain.CostInput{AreaSqft: 1e9, Floors: 1, Country: "India", TargetCurrency: "INR"})
	require.NoError(t, err)
	assert.Equal(t, int64(3_600_000_000_000), b.TotalEstimatedCost)
	assert.Positive(t, b.ArchitectFees)
	assert.Positive(t, b.LaborBreakdown.TotalDays)
}

func TestWhole(t *testing.T) {
	v, err := whole(decimal.RequireFromString("-12.9"))
	require.NoError(t, err)
	assert.Equal(t, int64(-12), v)

	_, err = whole(decimal.NewFromInt(math.MaxInt64).Add(decimal.NewFromInt(1)))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = whole(decimal.NewFromInt(math.MinInt64).Sub(decimal.NewFromInt(1)))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
