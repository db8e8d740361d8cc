package rfm

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/dataset"
)

// tenCustomers builds a population of 10 customers with strictly distinct
// recency (0, 10, ... 90 days), frequency (1..10 purchases) and monetary
// (100..1000) metrics, so every quintile holds exactly two customers.
func tenCustomers() []dataset.Transaction {
	latest := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	var txs []dataset.Transaction
	for i := 1; i <= 10; i++ {
		id := fmt.Sprintf("K%02d", i)
		last := latest.AddDate(0, 0, -10*(i-1))
		for k := 0; k < i; k++ {
			txs = append(txs, dataset.Transaction{
				CustomerID: id,
				SaleDate:   last.AddDate(0, 0, -k), // earlier purchases precede the last one
				PetType:    "Cachorro",
				Category:   "Ração",
				Product:    "Ração Premium 10kg",
				Quantity:   1,
				TotalValue: 100, // monetary total becomes 100*i
			})
		}
	}
	return txs
}

func scoresByID(scores []Score) map[string]Score {
	out := make(map[string]Score, len(scores))
	for _, s := range scores {
		out[s.CustomerID] = s
	}
	return out
}

func TestComputeMetrics(t *testing.T) {
	scores, err := Compute(tenCustomers())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if len(scores) != 10 {
		t.Fatalf("Expected 10 scored customers, got %d", len(scores))
	}

	byID := scoresByID(scores)

	// The most recent customer is scored against the dataset's own latest
	// sale date, not wall-clock today.
	if got := byID["K01"].RecencyDays; got != 0 {
		t.Errorf("Expected K01 recency 0, got %d", got)
	}
	if got := byID["K10"].RecencyDays; got != 90 {
		t.Errorf("Expected K10 recency 90, got %d", got)
	}
	if got := byID["K07"].Frequency; got != 7 {
		t.Errorf("Expected K07 frequency 7, got %d", got)
	}
	if got := byID["K03"].Monetary; got != 300 {
		t.Errorf("Expected K03 monetary 300, got %v", got)
	}
}

func TestScoreRangeAndUniformity(t *testing.T) {
	scores, err := Compute(tenCustomers())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	var rCounts, fCounts, mCounts [6]int
	for _, s := range scores {
		for name, v := range map[string]int{"R": s.R, "F": s.F, "M": s.M} {
			if v < 1 || v > 5 {
				t.Fatalf("%s score out of range for %s: %d", name, s.CustomerID, v)
			}
		}
		rCounts[s.R]++
		fCounts[s.F]++
		mCounts[s.M]++
	}

	// 10 customers, no ties: every quintile holds exactly two.
	for score := 1; score <= 5; score++ {
		if rCounts[score] != 2 {
			t.Errorf("R score %d: expected 2 customers, got %d", score, rCounts[score])
		}
		if fCounts[score] != 2 {
			t.Errorf("F score %d: expected 2 customers, got %d", score, fCounts[score])
		}
		if mCounts[score] != 2 {
			t.Errorf("M score %d: expected 2 customers, got %d", score, mCounts[score])
		}
	}
}

func TestInvertedRecencyDirection(t *testing.T) {
	scores, err := Compute(tenCustomers())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	byID := scoresByID(scores)

	if got := byID["K01"].R; got != 5 {
		t.Errorf("Most recent customer should score R=5, got %d", got)
	}
	if got := byID["K10"].R; got != 1 {
		t.Errorf("Stalest customer should score R=1, got %d", got)
	}
	if got := byID["K10"].F; got != 5 {
		t.Errorf("Most frequent customer should score F=5, got %d", got)
	}
	if got := byID["K10"].M; got != 5 {
		t.Errorf("Highest spending customer should score M=5, got %d", got)
	}
}

func TestFrequencyTiesDeterministic(t *testing.T) {
	// Five customers, one purchase each: frequency is fully tied and must be
	// broken by first appearance, not map order.
	latest := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	var txs []dataset.Transaction
	for i := 0; i < 5; i++ {
		txs = append(txs, dataset.Transaction{
			CustomerID: fmt.Sprintf("T%d", i),
			SaleDate:   latest.AddDate(0, 0, -7*i),
			TotalValue: float64(50 + 25*i),
			Quantity:   1,
		})
	}

	first, err := Compute(txs)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	// Tied frequency ranks follow appearance order: T0 gets 1, T4 gets 5.
	for i, s := range first {
		if want := i + 1; s.F != want {
			t.Errorf("Customer %s: expected F=%d, got %d", s.CustomerID, want, s.F)
		}
	}

	second, err := Compute(txs)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Recomputation on the same input must be identical")
	}
}

func TestCannotSegment(t *testing.T) {
	latest := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	flatMonetary := make([]dataset.Transaction, 6)
	for i := range flatMonetary {
		flatMonetary[i] = dataset.Transaction{
			CustomerID: fmt.Sprintf("F%d", i),
			SaleDate:   latest.AddDate(0, 0, -i),
			TotalValue: 100, // identical spend collapses the monetary bins
			Quantity:   1,
		}
	}

	tests := []struct {
		name string
		txs  []dataset.Transaction
	}{
		{"empty input", nil},
		{"fewer than five customers", tenCustomers()[:3]},
		{"degenerate monetary distribution", flatMonetary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.txs)
			if !errors.Is(err, ErrCannotSegment) {
				t.Errorf("Expected ErrCannotSegment, got %v", err)
			}
		})
	}
}

func TestComputeSegments(t *testing.T) {
	scores, err := Compute(tenCustomers())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	byID := scoresByID(scores)

	// K01: R=5 but only one cheap purchase -> Recent.
	if got := byID["K01"].Segment; got != SegmentRecent {
		t.Errorf("Expected K01 to be %q, got %q", SegmentRecent, got)
	}
	// K10: stale but frequent and high-spending -> Loyal (F rule precedes M).
	if got := byID["K10"].Segment; got != SegmentLoyal {
		t.Errorf("Expected K10 to be %q, got %q", SegmentLoyal, got)
	}
}
