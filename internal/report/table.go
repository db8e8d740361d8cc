// Package report renders pipeline outputs as plain-text tables for the CLI.
package report

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"
)

// Money formats a currency value with two decimals, per the dashboard's
// display convention.
func Money(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}

// Quantity formats an estimated unit quantity, or a dash when unavailable.
func Quantity(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.1f", v)
}

// Percent formats a proportion as a percentage with one decimal.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

// Table writes rows as an aligned table with a header.
func Table(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writeRow(tw, header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeRow(tw, row); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func writeRow(w io.Writer, cells []string) error {
	for i, cell := range cells {
		if i > 0 {
			if _, err := fmt.Fprint(w, "\t"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, cell); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
