package http

import (
	"github.com/buildwise/buildwise-backend/internal/estimation/costcal"
	"github.com/buildwise/buildwise-backend/internal/estimation/domain"
	"github.com/shopspring/decimal"
)

// EstimateRecorder counts successful engine computations.
type EstimateRecorder interface {
	RecordEstimate()
}

// Handler serves the estimation engine over HTTP.
type Handler struct {
	calc     *costcal.Calculator
	recorder EstimateRecorder
}

// New creates a Handler. recorder may be nil.
func New(calc *costcal.Calculator, recorder EstimateRecorder) *Handler {
	return &Handler{calc: calc, recorder: recorder}
}

type materialsRequest struct {
	Area   float64 `json:"area"`
	Floors int     `json:"floors"`
}

type convertRequest struct {
	Amount decimal.Decimal `json:"amount"`
	From   string          `json:"from"`
	To     string          `json:"to"`
}

type convertResponse struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Result float64 `json:"result"`
}

// RatesResponse describes the loaded rate table.
type RatesResponse struct {
	ReferenceCurrency string                        `json:"reference_currency"`
	DefaultCountry    string                        `json:"default_country"`
	Countries         map[string]domain.RateProfile `json:"countries"`
	ExchangeRates     map[string]decimal.Decimal    `json:"exchange_rates"`
	Currencies        []string                      `json:"currencies"`
}
