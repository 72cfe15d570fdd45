package rates

import (
	"fmt"
	"sort"
	"strings"

	"github.com/buildwise/buildwise-backend/internal/estimation/domain"
	"github.com/shopspring/decimal"
)

// Table is the immutable country and exchange-rate table. It is built once at
// start-up and shared read-only, so it needs no locking.
type Table struct {
	reference      string
	defaultCountry string
	countries      map[string]domain.RateProfile
	exchange       map[string]decimal.Decimal
}

// NewTable validates and copies the given profiles and rates.
func NewTable(reference, defaultCountry string, countries map[string]domain.RateProfile, exchange map[string]decimal.Decimal) (*Table, error) {
	if len(exchange) == 0 {
		return nil, fmt.Errorf("exchange table is empty")
	}
	if len(countries) == 0 {
		return nil, fmt.Errorf("country table is empty")
	}

	t := &Table{
		reference:      reference,
		defaultCountry: defaultCountry,
		countries:      make(map[string]domain.RateProfile, len(countries)),
		exchange:       make(map[string]decimal.Decimal, len(exchange)),
	}

	for code, r := range exchange {
		if !r.IsPositive() {
			return nil, fmt.Errorf("exchange rate for %s must be positive, got %s", code, r)
		}
		t.exchange[code] = r
	}

	if ref, ok := t.exchange[reference]; !ok {
		return nil, fmt.Errorf("reference currency %q missing from exchange table", reference)
	} else if !ref.Equal(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("reference currency %q must have rate 1, got %s", reference, ref)
	}

	for name, p := range countries {
		if err := validateProfile(name, p); err != nil {
			return nil, err
		}
		if _, ok := t.exchange[p.Currency]; !ok {
			return nil, fmt.Errorf("country %s uses currency %q which is not in the exchange table", name, p.Currency)
		}
		t.countries[name] = p
	}

	if _, ok := t.countries[defaultCountry]; !ok {
		return nil, fmt.Errorf("default country %q missing from country table", defaultCountry)
	}

	return t, nil
}

func validateProfile(name string, p domain.RateProfile) error {
	if strings.TrimSpace(p.Currency) == "" {
		return fmt.Errorf("country %s: currency is required", name)
	}

	positive := map[string]decimal.Decimal{
		"basic_cost_per_sqft":    p.BasicCostPerSqft,
		"premium_cost_per_sqft":  p.PremiumCostPerSqft,
		"worker_efficiency_sqft": p.WorkerEfficiencySqft,
	}
	for field, v := range positive {
		if !v.IsPositive() {
			return fmt.Errorf("country %s: %s must be positive, got %s", name, field, v)
		}
	}

	nonNegative := map[string]decimal.Decimal{
		"cement_bag_price":    p.CementBagPrice,
		"steel_kg_price":      p.SteelKgPrice,
		"sand_ton_price":      p.SandTonPrice,
		"aggregate_ton_price": p.AggregateTonPrice,
		"brick_price":         p.BrickPrice,
		"skilled_wage":        p.SkilledWage,
		"unskilled_wage":      p.UnskilledWage,
	}
	for field, v := range nonNegative {
		if v.IsNegative() {
			return fmt.Errorf("country %s: %s must not be negative, got %s", name, field, v)
		}
	}
	return nil
}

// Profile resolves a country's rate profile by exact name. Any other
// spelling resolves to the default profile; resolved is the name of the
// profile used and fallback reports whether that substitution happened.
func (t *Table) Profile(country string) (profile domain.RateProfile, resolved string, fallback bool) {
	if p, ok := t.countries[country]; ok {
		return p, country, false
	}
	return t.countries[t.defaultCountry], t.defaultCountry, true
}

// Rate returns the value of one reference unit in the given currency.
func (t *Table) Rate(code string) (decimal.Decimal, error) {
	r, ok := t.exchange[code]
	if !ok {
		return decimal.Zero, domain.NewUnknownCurrencyError(code)
	}
	return r, nil
}

func (t *Table) ReferenceCurrency() string { return t.reference }

func (t *Table) DefaultCountry() string { return t.defaultCountry }

// Countries lists supported country names in sorted order.
func (t *Table) Countries() []string {
	out := make([]string, 0, len(t.countries))
	for name := range t.countries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Currencies lists supported currency codes in sorted order.
func (t *Table) Currencies() []string {
	out := make([]string, 0, len(t.exchange))
	for code := range t.exchange {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// ExchangeRates returns a copy of the exchange table.
func (t *Table) ExchangeRates() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(t.exchange))
	for k, v := range t.exchange {
		out[k] = v
	}
	return out
}
