package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/report"
	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/rfm"
)

var rfmLimit int

var rfmCmd = &cobra.Command{
	Use:   "rfm",
	Short: "Segment customers by Recency, Frequency and Monetary value",
	Long: `Score every customer on recency of last purchase, purchase count
and total spend (quintile scores 1-5 each), classify them into one of six
behavioral segments, and print the segment breakdown plus the scored
customer table.

The scorer always works on the full customer base; category and pet-type
filters do not apply here.

Example:
  petshop-insights rfm --source vendas_petshop_6anos.csv --limit 20`,
	RunE: runRFM,
}

func init() {
	rfmCmd.Flags().IntVar(&rfmLimit, "limit", 25,
		"maximum customers to list (0 = all)")
}

func runRFM(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ds, err := newLoader().Load(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	scores, err := rfm.Compute(ds.Transactions)
	if errors.Is(err, rfm.ErrCannotSegment) {
		return fmt.Errorf("customer base cannot be segmented: %w", err)
	}
	if err != nil {
		return err
	}

	cmd.Printf("Customers scored: %d\n", len(scores))
	cmd.Println()

	stats := rfm.Breakdown(scores)
	statRows := make([][]string, 0, len(stats))
	for _, s := range stats {
		statRows = append(statRows, []string{
			string(s.Segment),
			fmt.Sprintf("%d", s.Count),
			report.Percent(s.Share),
		})
	}
	cmd.Println("Customers by segment")
	if err := report.Table(cmd.OutOrStdout(), []string{"Segment", "Count", "Share"}, statRows); err != nil {
		return err
	}
	cmd.Println()

	limit := len(scores)
	if rfmLimit > 0 && rfmLimit < limit {
		limit = rfmLimit
	}
	rows := make([][]string, 0, limit)
	for _, s := range scores[:limit] {
		rows = append(rows, []string{
			s.CustomerID,
			fmt.Sprintf("%d", s.RecencyDays),
			fmt.Sprintf("%d", s.Frequency),
			report.Money(s.Monetary),
			fmt.Sprintf("%d%d%d", s.R, s.F, s.M),
			string(s.Segment),
		})
	}
	cmd.Printf("Scored customers (%d of %d)\n", limit, len(scores))
	header := []string{"Customer", "Recency (days)", "Frequency", "Monetary", "RFM", "Segment"}
	return report.Table(cmd.OutOrStdout(), header, rows)
}
