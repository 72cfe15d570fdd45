package rates

import (
	"github.com/buildwise/buildwise-backend/internal/estimation/domain"
	"github.com/shopspring/decimal"
)

const (
	DefaultReferenceCurrency = "USD"
	DefaultCountry           = "India"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Default returns the built-in table: India and USA profiles, with exchange
// rates expressed against USD.
func Default() *Table {
	countries := map[string]domain.RateProfile{
		"India": {
			Currency:             "INR",
			BasicCostPerSqft:     d("1800"),
			PremiumCostPerSqft:   d("2500"),
			CementBagPrice:       d("380"),
			SteelKgPrice:         d("65"),
			SandTonPrice:         d("2000"),
			AggregateTonPrice:    d("1200"),
			BrickPrice:           d("10"),
			SkilledWage:          d("800"),
			UnskilledWage:        d("500"),
			WorkerEfficiencySqft: d("250"),
		},
		"USA": {
			Currency:             "USD",
			BasicCostPerSqft:     d("150"),
			PremiumCostPerSqft:   d("250"),
			CementBagPrice:       d("15"),
			SteelKgPrice:         d("1.5"),
			SandTonPrice:         d("25"),
			AggregateTonPrice:    d("30"),
			BrickPrice:           d("0.80"),
			SkilledWage:          d("300"),
			UnskilledWage:        d("180"),
			WorkerEfficiencySqft: d("400"),
		},
	}

	exchange := map[string]decimal.Decimal{
		"USD": d("1.0"),
		"INR": d("83.0"),
		"EUR": d("0.92"),
		"GBP": d("0.79"),
	}

	t, err := NewTable(DefaultReferenceCurrency, DefaultCountry, countries, exchange)
	if err != nil {
		// built-in data is static
		panic(err)
	}
	return t
}
