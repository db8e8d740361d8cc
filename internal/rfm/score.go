//-------------------------------------------------------------------------
//
// Petshop Insights Dashboard
//
// Portions copyright (c) 2025 - 2026, Breno Aliotti
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package rfm scores customers by Recency, Frequency and Monetary value and
// classifies them into behavioral segments.
package rfm

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/dataset"
)

// ErrCannotSegment reports a customer population too small or too degenerate
// to split into five quantile groups.
var ErrCannotSegment = errors.New("cannot segment customers into quintiles")

// Score is the RFM result for one customer.
type Score struct {
	CustomerID  string
	RecencyDays int
	Frequency   int
	Monetary    float64
	R, F, M     int
	Segment     Segment
}

// Compute scores every distinct customer in the transaction set. The scorer
// always works on the full, unfiltered customer base; the reference date is
// the latest sale date in the input, not wall-clock today, so recomputation
// on a historical dataset is reproducible.
func Compute(transactions []dataset.Transaction) ([]Score, error) {
	if len(transactions) == 0 {
		return nil, fmt.Errorf("%w: no transactions", ErrCannotSegment)
	}

	referenceDate := transactions[0].SaleDate
	for _, tx := range transactions[1:] {
		if tx.SaleDate.After(referenceDate) {
			referenceDate = tx.SaleDate
		}
	}

	// Accumulate per-customer metrics in first-appearance order. The order
	// matters: it is the deterministic tie-breaker for frequency ranking.
	index := make(map[string]int)
	var scores []Score
	lastSale := make(map[string]time.Time)
	for _, tx := range transactions {
		i, ok := index[tx.CustomerID]
		if !ok {
			i = len(scores)
			index[tx.CustomerID] = i
			scores = append(scores, Score{CustomerID: tx.CustomerID})
			lastSale[tx.CustomerID] = tx.SaleDate
		}
		scores[i].Frequency++
		scores[i].Monetary += tx.TotalValue
		if tx.SaleDate.After(lastSale[tx.CustomerID]) {
			lastSale[tx.CustomerID] = tx.SaleDate
		}
	}

	n := len(scores)
	if n < 5 {
		return nil, fmt.Errorf("%w: only %d customers", ErrCannotSegment, n)
	}

	for i := range scores {
		days := int(referenceDate.Sub(lastSale[scores[i].CustomerID]).Hours() / 24)
		scores[i].RecencyDays = days
	}

	recency := make([]float64, n)
	monetary := make([]float64, n)
	for i, s := range scores {
		recency[i] = float64(s.RecencyDays)
		monetary[i] = s.Monetary
	}

	// Recency and monetary use quantile bin edges; a value distribution too
	// flat to yield five distinct edges is a defined failure, not a crash.
	recencyEdges, err := quintileEdges(recency)
	if err != nil {
		return nil, fmt.Errorf("recency: %w", err)
	}
	monetaryEdges, err := quintileEdges(monetary)
	if err != nil {
		return nil, fmt.Errorf("monetary: %w", err)
	}

	frequencyScores := rankQuintiles(scores)

	for i := range scores {
		// Recency is inverted: the most recent bucket scores 5.
		scores[i].R = 6 - bin(recency[i], recencyEdges)
		scores[i].F = frequencyScores[i]
		scores[i].M = bin(monetary[i], monetaryEdges)
		scores[i].Segment = Classify(scores[i].R, scores[i].F, scores[i].M)
	}

	return scores, nil
}

// quintileEdges computes six strictly increasing quantile boundaries over the
// values. Duplicate edges mean a collapsed bin.
func quintileEdges(values []float64) ([]float64, error) {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	edges := make([]float64, 6)
	for j := 0; j <= 5; j++ {
		edges[j] = quantile(sorted, float64(j)/5)
	}
	for j := 1; j < len(edges); j++ {
		if edges[j] <= edges[j-1] {
			return nil, fmt.Errorf("%w: duplicate bin edges", ErrCannotSegment)
		}
	}
	return edges, nil
}

// quantile returns the q-quantile of a sorted slice using linear
// interpolation between order statistics.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// bin returns the 1-based quintile bucket for v given strictly increasing
// edges. The first bucket is closed on both sides.
func bin(v float64, edges []float64) int {
	for b := 1; b <= 4; b++ {
		if v <= edges[b] {
			return b
		}
	}
	return 5
}

// rankQuintiles scores frequency by stable rank. Counts carry many ties, so
// naive edge-based binning would be unstable; instead customers are ordered
// by (count, first appearance) and split into five equal-population groups.
func rankQuintiles(scores []Score) []int {
	n := len(scores)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]].Frequency < scores[order[b]].Frequency
	})

	result := make([]int, n)
	for rank, i := range order {
		result[i] = rank*5/n + 1
	}
	return result
}
