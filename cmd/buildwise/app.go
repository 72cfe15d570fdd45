package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/buildwise/buildwise-backend/internal/estimation/costcal"
	"github.com/buildwise/buildwise-backend/internal/estimation/domain"
	"github.com/buildwise/buildwise-backend/internal/estimation/rates"
	"github.com/buildwise/buildwise-backend/internal/logging"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "buildwise",
		Usage:     "Construction cost and material estimates",
		Version:   version,
		Writer:    out,
		ErrWriter: out,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "rates",
				Usage:   "YAML rate table replacing the built-in one",
				EnvVars: []string{"RATES_FILE"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			logging.Init(c.String("log-level"), "development")
			return nil
		},

		Commands: []*cli.Command{
			estimateCommand(),
			materialsCommand(),
			convertCommand(),
			ratesCommand(),
		},
	}
}

func loadTable(c *cli.Context) (*rates.Table, error) {
	return rates.Load(c.String("rates"))
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Value:   "text",
		Usage:   "Output format (text, json)",
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// =============================================================================
// ESTIMATE COMMAND
// =============================================================================

func estimateCommand() *cli.Command {
	return &cli.Command{
		Name:  "estimate",
		Usage: "Full cost breakdown for a project",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "area", Aliases: []string{"a"}, Usage: "Plot area in sqft", Required: true},
			&cli.IntFlag{Name: "floors", Aliases: []string{"f"}, Value: 1, Usage: "Floors above the ground floor"},
			&cli.StringFlag{Name: "quality", Aliases: []string{"q"}, Value: "standard", Usage: "premium, standard or budget"},
			&cli.StringFlag{Name: "country", Aliases: []string{"c"}, Value: rates.DefaultCountry, Usage: "Country rate profile"},
			&cli.StringFlag{Name: "currency", Usage: "Target currency (defaults to the country's currency)"},
			outputFlag(),
		},
		Action: runEstimate,
	}
}

func runEstimate(c *cli.Context) error {
	table, err := loadTable(c)
	if err != nil {
		return err
	}

	in := domain.CostInput{
		AreaSqft:       c.Float64("area"),
		Floors:         c.Int("floors"),
		Quality:        domain.ParseQuality(c.String("quality")),
		Country:        c.String("country"),
		TargetCurrency: strings.ToUpper(c.String("currency")),
	}
	if in.TargetCurrency == "" {
		p, _, _ := table.Profile(in.Country)
		in.TargetCurrency = p.Currency
	}

	b, err := costcal.NewCalculator(table).Compute(in)
	if err != nil {
		return err
	}
	if b.CountryFallback {
		log.Warn().Str("country", in.Country).Str("profile", b.RateProfile).Msg("country not supported, using default rates")
	}

	if c.String("output") == "json" {
		return writeJSON(c.App.Writer, b)
	}
	return printBreakdown(c.App.Writer, b)
}

func printBreakdown(out io.Writer, b *domain.CostBreakdown) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Country\t%s (rates: %s)\n", b.Country, b.RateProfile)
	fmt.Fprintf(w, "Quality\t%s\n", b.Quality)
	fmt.Fprintf(w, "Built-up area\t%g sqft\n", b.BuiltUpAreaSqft)
	fmt.Fprintf(w, "Total estimated cost\t%d %s\n", b.TotalEstimatedCost, b.Currency)
	fmt.Fprintln(w)

	m := b.MaterialCostBreakdown
	fmt.Fprintln(w, "MATERIALS\t")
	fmt.Fprintf(w, "  Cement\t%d\n", m.Cement)
	fmt.Fprintf(w, "  Steel\t%d\n", m.Steel)
	fmt.Fprintf(w, "  Sand\t%d\n", m.Sand)
	fmt.Fprintf(w, "  Aggregate\t%d\n", m.Aggregate)
	fmt.Fprintf(w, "  Bricks\t%d\n", m.Bricks)
	fmt.Fprintf(w, "  Finishing and fittings\t%d\n", m.FinishingAndFittings)
	fmt.Fprintln(w)

	l := b.LaborBreakdown
	fmt.Fprintln(w, "LABOR\t")
	fmt.Fprintf(w, "  Skilled\t%d workers x %d days @ %d = %d\n", l.Skilled.Workforce, l.Skilled.Duration, l.Skilled.DailyWage, l.Skilled.TotalCost)
	fmt.Fprintf(w, "  Unskilled\t%d workers x %d days @ %d = %d\n", l.Unskilled.Workforce, l.Unskilled.Duration, l.Unskilled.DailyWage, l.Unskilled.TotalCost)
	fmt.Fprintf(w, "  Total\t%d workers, %d days, %d\n", l.TotalWorkforce, l.TotalDays, l.TotalLaborCost)
	fmt.Fprintln(w)

	s := b.SummaryBreakdown
	fmt.Fprintf(w, "Architect fees\t%d\n", b.ArchitectFees)
	fmt.Fprintf(w, "Contingency\t%d\n", b.Contingency)
	fmt.Fprintf(w, "Summary\tmaterial %d, labor %d, other %d\n", s.Material, s.Labor, s.Other)

	return w.Flush()
}

// =============================================================================
// MATERIALS COMMAND
// =============================================================================

func materialsCommand() *cli.Command {
	return &cli.Command{
		Name:  "materials",
		Usage: "Quantity take-off for the core materials",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "area", Aliases: []string{"a"}, Usage: "Plot area in sqft", Required: true},
			&cli.IntFlag{Name: "floors", Aliases: []string{"f"}, Value: 1, Usage: "Floors above the ground floor"},
			outputFlag(),
		},
		Action: func(c *cli.Context) error {
			m, err := costcal.EstimateMaterials(c.Float64("area"), c.Int("floors"))
			if err != nil {
				return err
			}
			if c.String("output") == "json" {
				return writeJSON(c.App.Writer, m)
			}

			w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Built-up area\t%g sqft\n", m.TotalBuiltUpAreaSqft)
			fmt.Fprintf(w, "Cement\t%d bags\n", m.CementBags)
			fmt.Fprintf(w, "Steel\t%d kg\n", m.SteelKg)
			fmt.Fprintf(w, "Sand\t%d tons\n", m.SandTons)
			fmt.Fprintf(w, "Aggregate\t%d tons\n", m.AggregateTons)
			fmt.Fprintf(w, "Bricks\t%d\n", m.Bricks)
			return w.Flush()
		},
	}
}

// =============================================================================
// CONVERT COMMAND
// =============================================================================

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:  "convert",
		Usage: "Convert an amount between supported currencies",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "amount", Usage: "Amount to convert", Required: true},
			&cli.StringFlag{Name: "from", Usage: "Source currency", Required: true},
			&cli.StringFlag{Name: "to", Usage: "Target currency", Required: true},
		},
		Action: func(c *cli.Context) error {
			table, err := loadTable(c)
			if err != nil {
				return err
			}

			amount, err := decimal.NewFromString(c.String("amount"))
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", c.String("amount"), err)
			}

			from := strings.ToUpper(c.String("from"))
			to := strings.ToUpper(c.String("to"))
			out, err := costcal.NewConverter(table).ConvertSupported(amount, from, to)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "%s %s = %s %s\n", amount, from, out.StringFixed(2), to)
			return nil
		},
	}
}

// =============================================================================
// RATES COMMAND
// =============================================================================

func ratesCommand() *cli.Command {
	return &cli.Command{
		Name:  "rates",
		Usage: "Show the loaded rate table",
		Flags: []cli.Flag{outputFlag()},
		Action: func(c *cli.Context) error {
			table, err := loadTable(c)
			if err != nil {
				return err
			}

			if c.String("output") == "json" {
				countries := make(map[string]domain.RateProfile)
				for _, name := range table.Countries() {
					p, _, _ := table.Profile(name)
					countries[name] = p
				}
				return writeJSON(c.App.Writer, map[string]interface{}{
					"reference_currency": table.ReferenceCurrency(),
					"default_country":    table.DefaultCountry(),
					"countries":          countries,
					"exchange_rates":     table.ExchangeRates(),
				})
			}

			w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "COUNTRY\tCURRENCY\tBASIC/SQFT\tPREMIUM/SQFT\tSKILLED/DAY\tUNSKILLED/DAY")
			for _, name := range table.Countries() {
				p, _, _ := table.Profile(name)
				marker := ""
				if name == table.DefaultCountry() {
					marker = " (default)"
				}
				fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\t%s\t%s\n", name, marker, p.Currency,
					p.BasicCostPerSqft, p.PremiumCostPerSqft, p.SkilledWage, p.UnskilledWage)
			}
			fmt.Fprintln(w)

			fmt.Fprintf(w, "CURRENCY\tPER %s\n", table.ReferenceCurrency())
			ex := table.ExchangeRates()
			for _, code := range table.Currencies() {
				fmt.Fprintf(w, "%s\t%s\n", code, ex[code])
			}
			return w.Flush()
		},
	}
}
