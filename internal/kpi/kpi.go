// Package kpi computes the descriptive indicators and segment breakdowns
// shown on the dashboard's home page.
package kpi

import (
	"sort"

	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/dataset"
)

// Overview holds the headline figures.
type Overview struct {
	TotalRevenue  float64
	AverageTicket float64
	SaleCount     int
}

// Compute returns the headline figures over the given transactions.
func Compute(transactions []dataset.Transaction) Overview {
	o := Overview{SaleCount: len(transactions)}
	for _, tx := range transactions {
		o.TotalRevenue += tx.TotalValue
	}
	if o.SaleCount > 0 {
		o.AverageTicket = o.TotalRevenue / float64(o.SaleCount)
	}
	return o
}

// FilterYear returns the transactions from one calendar year. A zero year
// means all years.
func FilterYear(transactions []dataset.Transaction, year int) []dataset.Transaction {
	if year == 0 {
		return transactions
	}
	var out []dataset.Transaction
	for _, tx := range transactions {
		if tx.SaleDate.Year() == year {
			out = append(out, tx)
		}
	}
	return out
}

// Years returns the distinct calendar years present, sorted ascending.
func Years(transactions []dataset.Transaction) []int {
	seen := make(map[int]struct{})
	for _, tx := range transactions {
		seen[tx.SaleDate.Year()] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// RevenueByCalendarMonth sums revenue per calendar month (January through
// December) across all years in the input.
func RevenueByCalendarMonth(transactions []dataset.Transaction) [12]float64 {
	var out [12]float64
	for _, tx := range transactions {
		out[int(tx.SaleDate.Month())-1] += tx.TotalValue
	}
	return out
}

// LabeledValue is one row of a breakdown table.
type LabeledValue struct {
	Label string
	Value float64
}

// RevenueByCategory sums revenue per product category, descending by revenue.
func RevenueByCategory(transactions []dataset.Transaction) []LabeledValue {
	return revenueBy(transactions, func(tx dataset.Transaction) string { return tx.Category })
}

// RevenueByPetType sums revenue per pet type, descending by revenue.
func RevenueByPetType(transactions []dataset.Transaction) []LabeledValue {
	return revenueBy(transactions, func(tx dataset.Transaction) string { return tx.PetType })
}

func revenueBy(transactions []dataset.Transaction, key func(dataset.Transaction) string) []LabeledValue {
	sums := make(map[string]float64)
	for _, tx := range transactions {
		sums[key(tx)] += tx.TotalValue
	}
	out := make([]LabeledValue, 0, len(sums))
	for label, value := range sums {
		out = append(out, LabeledValue{Label: label, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// TopProducts returns the n best-selling products by unit quantity. When the
// dataset carries no quantity column the result is nil and callers should
// skip the table.
func TopProducts(ds *dataset.Dataset, n int) []LabeledValue {
	if !ds.HasQuantity {
		return nil
	}
	sums := make(map[string]float64)
	for _, tx := range ds.Transactions {
		sums[tx.Product] += float64(tx.Quantity)
	}
	out := make([]LabeledValue, 0, len(sums))
	for label, value := range sums {
		out = append(out, LabeledValue{Label: label, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Label < out[j].Label
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
