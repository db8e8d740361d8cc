//-------------------------------------------------------------------------
//
// Petshop Insights Dashboard
//
// Portions copyright (c) 2025 - 2026, Breno Aliotti
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package dataset loads the sales transaction log into memory.
//
// Transactions are immutable after ingest: the analytics pipelines never
// mutate the loaded table, they derive fresh structures from it on every run.
package dataset

import (
	"context"
	"fmt"
	"time"
)

// Transaction is a single sale record.
type Transaction struct {
	CustomerID string
	SaleDate   time.Time
	PetType    string
	Category   string
	Product    string
	Quantity   int
	TotalValue float64
}

// Dataset is an in-memory sales table.
type Dataset struct {
	// Transactions in source order.
	Transactions []Transaction

	// HasQuantity is false when the source lacks a quantity column.
	// Quantity-derived outputs must be skipped in that case.
	HasQuantity bool

	// Identity uniquely identifies the source contents, used as cache key.
	Identity string

	// SkippedRows counts rows rejected on ingest (bad dates, negative
	// values, quantity below one).
	SkippedRows int
}

// MissingColumnError reports a required column absent from the source.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found in source", e.Column)
}

// Source loads a dataset from some backing store.
type Source interface {
	// Load reads the full transaction table.
	Load(ctx context.Context) (*Dataset, error)

	// Identity returns a stable key for the current source contents.
	Identity() (string, error)
}

// validRow reports whether a parsed row satisfies the ingest invariants:
// total value must be non-negative and quantity at least one (when present).
func validRow(totalValue float64, quantity int, hasQuantity bool) bool {
	if totalValue < 0 {
		return false
	}
	if hasQuantity && quantity < 1 {
		return false
	}
	return true
}
