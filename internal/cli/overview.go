package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/dataset"
	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/kpi"
	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/report"
)

var overviewYear int

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show sales KPIs and breakdowns",
	Long: `Show the headline figures (total revenue, average ticket, sale
count) plus revenue by calendar month, top products by quantity sold, and
revenue by category and pet type.

Example:
  petshop-insights overview --source vendas_petshop_6anos.csv
  petshop-insights overview --year 2024`,
	RunE: runOverview,
}

func init() {
	overviewCmd.Flags().IntVar(&overviewYear, "year", 0,
		"restrict to one calendar year (0 = all years)")
}

func runOverview(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ds, err := newLoader().Load(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	txs := kpi.FilterYear(ds.Transactions, overviewYear)
	if len(txs) == 0 {
		return fmt.Errorf("no transactions found for the selected year")
	}

	overview := kpi.Compute(txs)
	cmd.Println("Sales overview")
	cmd.Println()
	cmd.Printf("  Total revenue:   %s\n", report.Money(overview.TotalRevenue))
	cmd.Printf("  Average ticket:  %s\n", report.Money(overview.AverageTicket))
	cmd.Printf("  Sales:           %d\n", overview.SaleCount)
	cmd.Println()

	byMonth := kpi.RevenueByCalendarMonth(txs)
	monthRows := make([][]string, 0, len(byMonth))
	for i, v := range byMonth {
		monthRows = append(monthRows, []string{fmt.Sprintf("%02d", i+1), report.Money(v)})
	}
	cmd.Println("Revenue by calendar month")
	if err := report.Table(cmd.OutOrStdout(), []string{"Month", "Revenue"}, monthRows); err != nil {
		return err
	}
	cmd.Println()

	yearDS := &dataset.Dataset{Transactions: txs, HasQuantity: ds.HasQuantity}
	if top := kpi.TopProducts(yearDS, 10); top != nil {
		rows := make([][]string, 0, len(top))
		for _, p := range top {
			rows = append(rows, []string{p.Label, fmt.Sprintf("%.0f", p.Value)})
		}
		cmd.Println("Top products by quantity sold")
		if err := report.Table(cmd.OutOrStdout(), []string{"Product", "Quantity"}, rows); err != nil {
			return err
		}
		cmd.Println()
	} else {
		cmd.Println("Top products unavailable: source has no quantity column")
		cmd.Println()
	}

	for _, breakdown := range []struct {
		title string
		rows  []kpi.LabeledValue
	}{
		{"Revenue by category", kpi.RevenueByCategory(txs)},
		{"Revenue by pet type", kpi.RevenueByPetType(txs)},
	} {
		rows := make([][]string, 0, len(breakdown.rows))
		for _, r := range breakdown.rows {
			rows = append(rows, []string{r.Label, report.Money(r.Value)})
		}
		cmd.Println(breakdown.title)
		if err := report.Table(cmd.OutOrStdout(), []string{"", "Revenue"}, rows); err != nil {
			return err
		}
		cmd.Println()
	}

	return nil
}
