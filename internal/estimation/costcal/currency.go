package costcal

import (
	"github.com/buildwise/buildwise-backend/internal/estimation/rates"
	"github.com/shopspring/decimal"
)

// Converter converts amounts between currencies through the table's
// reference currency. It does not round; callers choose truncation.
type Converter struct {
	table *rates.Table
}

func NewConverter(table *rates.Table) *Converter {
	return &Converter{table: table}
}

// Convert returns amount expressed in currency to. Identical codes return
// amount unchanged.
func (c *Converter) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	fromRate, err := c.table.Rate(from)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := c.table.Rate(to)
	if err != nil {
		return decimal.Zero, err
	}

	inReference := amount.Div(fromRate)
	return inReference.Mul(toRate), nil
}

// ConvertSupported is Convert for request paths: both codes must be in the
// table, including when they are identical.
func (c *Converter) ConvertSupported(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	for _, code := range []string{from, to} {
		if _, err := c.table.Rate(code); err != nil {
			return decimal.Zero, err
		}
	}
	return c.Convert(amount, from, to)
}

// ConvertFloat is Convert for callers working in float64.
func (c *Converter) ConvertFloat(amount float64, from, to string) (float64, error) {
	out, err := c.Convert(decimal.NewFromFloat(amount), from, to)
	if err != nil {
		return 0, err
	}
	f, _ := out.Float64()
	return f, nil
}

// toTarget converts a local amount and truncates it toward zero.
func (c *Converter) toTarget(amount decimal.Decimal, from, to string) (int64, error) {
	out, err := c.Convert(amount, from, to)
	if err != nil {
		return 0, err
	}
	return whole(out)
}
