package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/aggregate"
	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/config"
	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/forecast"
	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/report"
)

var (
	forecastMonths     int
	forecastPetTypes   []string
	forecastCategories []string
	forecastConfidence float64
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast monthly revenue and estimated stock quantity",
	Long: `Fit a seasonal time-series model to the monthly revenue history and
predict the next months with uncertainty bounds. Each predicted revenue value
is back-converted into an estimated unit quantity through the historical
average unit price.

Filters restrict the history by pet type and category; omitting a filter
selects the full domain.

Example:
  petshop-insights forecast --months 6
  petshop-insights forecast --months 12 --pet-type Cachorro --category "Ração"`,
	RunE: runForecast,
}

func init() {
	forecastCmd.Flags().IntVar(&forecastMonths, "months", 0,
		fmt.Sprintf("months to predict (%d-%d)", config.MinHorizon, config.MaxHorizon))
	forecastCmd.Flags().StringSliceVar(&forecastPetTypes, "pet-type", nil,
		"pet types to include (default: all)")
	forecastCmd.Flags().StringSliceVar(&forecastCategories, "category", nil,
		"categories to include (default: all)")
	forecastCmd.Flags().Float64Var(&forecastConfidence, "confidence", 0,
		"prediction interval confidence level")
}

func runForecast(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if forecastMonths > 0 {
		cfg.Forecast.Horizon = forecastMonths
	}
	if forecastConfidence > 0 {
		cfg.Forecast.Confidence = forecastConfidence
	}

	if err := cfg.ValidateForecast(); err != nil {
		return err
	}

	ds, err := newLoader().Load(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	filter := aggregate.Filter{
		PetTypes:   forecastPetTypes,
		Categories: forecastCategories,
	}
	buckets := aggregate.Monthly(ds, filter)
	if len(buckets) == 0 {
		return fmt.Errorf("no transactions match the selected filters")
	}

	result, err := forecast.Run(buckets, ds.HasQuantity, forecast.Config{
		Horizon:    cfg.Forecast.Horizon,
		Confidence: cfg.Forecast.Confidence,
	})
	switch {
	case errors.Is(err, forecast.ErrInsufficientData):
		return fmt.Errorf("not enough history to forecast: %w "+
			"(try widening the filters)", err)
	case errors.Is(err, forecast.ErrUnavailable):
		return fmt.Errorf("forecast unavailable for this selection")
	case err != nil:
		return err
	}

	cmd.Printf("Model: %s over %d months of history\n", result.Model, len(buckets))
	if result.QuantityIssue != nil {
		cmd.Printf("Note: quantity estimates unavailable (%v)\n", result.QuantityIssue)
	} else {
		cmd.Printf("Average unit price: %s\n", report.Money(result.AvgUnitPrice))
	}
	cmd.Println()

	rows := make([][]string, 0, len(result.Points))
	for _, p := range result.Points {
		rows = append(rows, []string{
			p.PeriodStart.Format("2006-01"),
			report.Money(p.Revenue),
			report.Quantity(p.EstimatedQuantity),
			report.Money(p.Lower),
			report.Money(p.Upper),
		})
	}
	header := []string{"Month", "Predicted revenue", "Est. quantity", "Lower bound", "Upper bound"}
	return report.Table(cmd.OutOrStdout(), header, rows)
}
