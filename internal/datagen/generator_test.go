package datagen_test

import (
	"context"
	"path/filepath"
	"reflect"
	"regexp"
	"testing"
	"time"

	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/datagen"
	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/dataset"
)

func TestGeneratorDeterministic(t *testing.T) {
	cfg := datagen.Config{Years: 2, Customers: 50, Rows: 500, Seed: 7}

	a := datagen.NewGenerator(cfg).Transactions()
	b := datagen.NewGenerator(cfg).Transactions()

	if !reflect.DeepEqual(a, b) {
		t.Error("Expected identical output for identical seeds")
	}

	cfg.Seed = 8
	c := datagen.NewGenerator(cfg).Transactions()
	if reflect.DeepEqual(a, c) {
		t.Error("Expected different output for different seeds")
	}
}

func TestGeneratorInvariants(t *testing.T) {
	cfg := datagen.Config{Years: 3, Customers: 100, Rows: 1000, Seed: 42}
	txs := datagen.NewGenerator(cfg).Transactions()

	if len(txs) != cfg.Rows {
		t.Fatalf("Expected %d rows, got %d", cfg.Rows, len(txs))
	}

	customerID := regexp.MustCompile(`^C\d{4}$`)

	// History is anchored at the first of the current month, so the window
	// must be too; a wall-clock anchor would reject valid early-month dates.
	now := time.Now()
	earliest := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(-cfg.Years, 0, -1)

	for i, tx := range txs {
		if !customerID.MatchString(tx.CustomerID) {
			t.Fatalf("Row %d: bad customer ID %q", i, tx.CustomerID)
		}
		if tx.Quantity < 1 || tx.Quantity > 5 {
			t.Fatalf("Row %d: quantity %d out of range", i, tx.Quantity)
		}
		if tx.TotalValue <= 0 {
			t.Fatalf("Row %d: non-positive total value %f", i, tx.TotalValue)
		}
		if tx.PetType == "" || tx.Category == "" || tx.Product == "" {
			t.Fatalf("Row %d: empty attribute: %+v", i, tx)
		}
		if tx.SaleDate.Before(earliest) || tx.SaleDate.After(time.Now()) {
			t.Fatalf("Row %d: sale date %s outside generated window", i, tx.SaleDate)
		}
	}
}

func TestGeneratorCoversHistory(t *testing.T) {
	cfg := datagen.Config{Years: 2, Customers: 100, Rows: 5000, Seed: 3}
	txs := datagen.NewGenerator(cfg).Transactions()

	months := make(map[string]struct{})
	for _, tx := range txs {
		months[tx.SaleDate.Format("2006-01")] = struct{}{}
	}

	// With 5000 rows over 24 months every month should receive sales.
	if len(months) != cfg.Years*12 {
		t.Errorf("Expected %d distinct months, got %d", cfg.Years*12, len(months))
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	cfg := datagen.Config{Years: 1, Customers: 20, Rows: 100, Seed: 11}
	txs := datagen.NewGenerator(cfg).Transactions()

	path := filepath.Join(t.TempDir(), "vendas.csv")
	if err := datagen.WriteCSV(path, txs); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	source := dataset.NewCSVSource(path, dataset.DefaultCSVOptions())
	ds, err := source.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(ds.Transactions) != len(txs) {
		t.Fatalf("Expected %d transactions back, got %d", len(txs), len(ds.Transactions))
	}
	if !ds.HasQuantity {
		t.Error("Expected quantity column in generated CSV")
	}
	if ds.SkippedRows != 0 {
		t.Errorf("Expected no skipped rows, got %d", ds.SkippedRows)
	}

	for i := range txs {
		got, want := ds.Transactions[i], txs[i]
		if !got.SaleDate.Equal(want.SaleDate) {
			t.Fatalf("Row %d: date %s, want %s", i, got.SaleDate, want.SaleDate)
		}
		if got.CustomerID != want.CustomerID || got.Product != want.Product ||
			got.Quantity != want.Quantity || got.TotalValue != want.TotalValue {
			t.Fatalf("Row %d: got %+v, want %+v", i, got, want)
		}
	}
}
