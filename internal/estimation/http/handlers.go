package http

import (
	"net/http"
	"strings"

	"github.com/buildwise/buildwise-backend/internal/estimation/costcal"
	"github.com/buildwise/buildwise-backend/internal/estimation/domain"
	"github.com/buildwise/buildwise-backend/internal/logging"
	"github.com/gin-gonic/gin"
)

// EstimateMaterials returns the quantity take-off for an area and floor count
func (h *Handler) EstimateMaterials(c *gin.Context) {
	var body materialsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "code": string(domain.KindInvalidInput)})
		return
	}

	m, err := costcal.EstimateMaterials(body.Area, body.Floors)
	if err != nil {
		RespondError(c, err)
		return
	}

	h.recordEstimate()
	c.JSON(http.StatusOK, m)
}

// EstimateCost returns the full cost breakdown. Without a target currency the
// country's local currency is used.
func (h *Handler) EstimateCost(c *gin.Context) {
	var in domain.CostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "code": string(domain.KindInvalidInput)})
		return
	}

	if strings.TrimSpace(in.TargetCurrency) == "" {
		p, _, _ := h.calc.Table().Profile(in.Country)
		in.TargetCurrency = p.Currency
	}

	b, err := h.calc.Compute(in)
	if err != nil {
		logging.FromContext(c.Request.Context()).LogError("estimate_cost", err)
		RespondError(c, err)
		return
	}

	if b.CountryFallback {
		logging.FromContext(c.Request.Context()).LogWarnf("estimate_cost",
			"country %q is not supported, using %s rates", in.Country, b.RateProfile)
	}

	h.recordEstimate()
	c.JSON(http.StatusOK, b)
}

// Convert converts an amount between two supported currencies
func (h *Handler) Convert(c *gin.Context) {
	var body convertRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "code": string(domain.KindInvalidInput)})
		return
	}

	out, err := h.calc.Converter().ConvertSupported(body.Amount, body.From, body.To)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, convertResponse{
		Amount: body.Amount.InexactFloat64(),
		From:   body.From,
		To:     body.To,
		Result: out.InexactFloat64(),
	})
}

// Rates lists the loaded country profiles and exchange rates
func (h *Handler) Rates(c *gin.Context) {
	t := h.calc.Table()

	countries := make(map[string]domain.RateProfile)
	for _, name := range t.Countries() {
		p, _, _ := t.Profile(name)
		countries[name] = p
	}

	c.JSON(http.StatusOK, RatesResponse{
		ReferenceCurrency: t.ReferenceCurrency(),
		DefaultCountry:    t.DefaultCountry(),
		Countries:         countries,
		ExchangeRates:     t.ExchangeRates(),
		Currencies:        t.Currencies(),
	})
}

func (h *Handler) recordEstimate() {
	if h.recorder != nil {
		h.recorder.RecordEstimate()
	}
}
