//-------------------------------------------------------------------------
//
// Petshop Insights Dashboard
//
// Portions copyright (c) 2025 - 2026, Breno Aliotti
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package aggregate groups sales transactions into calendar-month buckets.
package aggregate

import (
	"sort"
	"time"

	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/dataset"
)

// Filter selects transactions by pet type and category. A nil or empty slice
// means "all" for that dimension, mirroring the UI's select-all toggle.
type Filter struct {
	PetTypes   []string
	Categories []string
}

// Match reports whether a transaction passes the filter.
func (f Filter) Match(tx dataset.Transaction) bool {
	return contains(f.PetTypes, tx.PetType) && contains(f.Categories, tx.Category)
}

func contains(set []string, value string) bool {
	if len(set) == 0 {
		return true
	}
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}

// MonthlyBucket is one calendar month of matching sales.
type MonthlyBucket struct {
	// PeriodStart is the first day of the month, UTC.
	PeriodStart time.Time

	// Revenue is the sum of total values in the month.
	Revenue float64

	// Quantity is the sum of unit quantities in the month. Zero when the
	// dataset carries no quantity column.
	Quantity int
}

// monthStart truncates a date to the first day of its month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Monthly buckets the filtered transactions by calendar month, ordered
// ascending by period start. Interior months with no matching transactions
// are zero-filled so the series is contiguous from the first to the last
// observed month, matching the original dashboard's month-start resampling.
// The result is empty when nothing matches.
func Monthly(ds *dataset.Dataset, f Filter) []MonthlyBucket {
	byMonth := make(map[time.Time]*MonthlyBucket)
	for _, tx := range ds.Transactions {
		if !f.Match(tx) {
			continue
		}
		m := monthStart(tx.SaleDate)
		b, ok := byMonth[m]
		if !ok {
			b = &MonthlyBucket{PeriodStart: m}
			byMonth[m] = b
		}
		b.Revenue += tx.TotalValue
		b.Quantity += tx.Quantity
	}

	if len(byMonth) == 0 {
		return nil
	}

	months := make([]time.Time, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	first, last := months[0], months[len(months)-1]
	var buckets []MonthlyBucket
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		if b, ok := byMonth[m]; ok {
			buckets = append(buckets, *b)
		} else {
			buckets = append(buckets, MonthlyBucket{PeriodStart: m})
		}
	}
	return buckets
}

// Totals sums revenue and quantity over the filtered transactions; the inputs
// to the average unit price used for stock estimates.
func Totals(ds *dataset.Dataset, f Filter) (revenue float64, quantity int) {
	for _, tx := range ds.Transactions {
		if !f.Match(tx) {
			continue
		}
		revenue += tx.TotalValue
		quantity += tx.Quantity
	}
	return revenue, quantity
}

// Domain returns the distinct pet types and categories present in the
// dataset, sorted; the UI's filter domains.
func Domain(ds *dataset.Dataset) (petTypes, categories []string) {
	pets := make(map[string]struct{})
	cats := make(map[string]struct{})
	for _, tx := range ds.Transactions {
		pets[tx.PetType] = struct{}{}
		cats[tx.Category] = struct{}{}
	}
	for p := range pets {
		petTypes = append(petTypes, p)
	}
	for c := range cats {
		categories = append(categories, c)
	}
	sort.Strings(petTypes)
	sort.Strings(categories)
	return petTypes, categories
}
