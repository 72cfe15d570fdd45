package rates

import (
	"fmt"
	"os"

	"github.com/buildwise/buildwise-backend/internal/estimation/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a rate table.
type File struct {
	ReferenceCurrency string                        `yaml:"reference_currency"`
	DefaultCountry    string                        `yaml:"default_country"`
	ExchangeRates     map[string]decimal.Decimal    `yaml:"exchange_rates"`
	Countries         map[string]domain.RateProfile `yaml:"countries"`
}

// Parse decodes a YAML rate table.
func Parse(b []byte) (*Table, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse rate table: %w", err)
	}
	if f.ReferenceCurrency == "" {
		f.ReferenceCurrency = DefaultReferenceCurrency
	}
	if f.DefaultCountry == "" {
		f.DefaultCountry = DefaultCountry
	}
	t, err := NewTable(f.ReferenceCurrency, f.DefaultCountry, f.Countries, f.ExchangeRates)
	if err != nil {
		return nil, fmt.Errorf("invalid rate table: %w", err)
	}
	return t, nil
}

// LoadFile reads a YAML rate table from disk.
func LoadFile(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rate table: %w", err)
	}
	return Parse(b)
}

// Load returns the table at path, or the built-in table when path is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
