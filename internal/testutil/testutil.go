//-------------------------------------------------------------------------
//
// Petshop Insights Dashboard
//
// Copyright (c) 2025 - 2026, Breno Aliotti
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package testutil provides fixtures and helpers for tests.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/dataset"
)

// Tx builds a transaction from a date in "2006-01-02" form. It panics on a
// malformed date, which is fine for test fixtures.
func Tx(customer, date, petType, category, product string, quantity int, totalValue float64) dataset.Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return dataset.Transaction{
		CustomerID: customer,
		SaleDate:   d,
		PetType:    petType,
		Category:   category,
		Product:    product,
		Quantity:   quantity,
		TotalValue: totalValue,
	}
}

// MonthlySales builds one transaction per month starting at start, with the
// given quantities and a constant unit price. Useful for exercising the
// quantity back-conversion exactly.
func MonthlySales(start time.Time, quantities []int, unitPrice float64) []dataset.Transaction {
	txs := make([]dataset.Transaction, len(quantities))
	for i, qty := range quantities {
		txs[i] = dataset.Transaction{
			CustomerID: "C0001",
			SaleDate:   start.AddDate(0, i, 0),
			PetType:    "Cachorro",
			Category:   "Ração",
			Product:    "Ração Premium 10kg",
			Quantity:   qty,
			TotalValue: unitPrice * float64(qty),
		}
	}
	return txs
}

// PostgresAvailable checks if PostgreSQL is available for testing.
// Returns the connection string if available, empty string otherwise.
// Override the default with the PETSHOP_TEST_CONN environment variable.
func PostgresAvailable() string {
	connStr := os.Getenv("PETSHOP_TEST_CONN")
	if connStr == "" {
		connStr = "postgres://postgres@localhost:5432/postgres"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return ""
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return ""
	}

	return connStr
}

// SkipIfNoPostgres skips the test if PostgreSQL is not available.
func SkipIfNoPostgres(t *testing.T) string {
	t.Helper()
	connStr := PostgresAvailable()
	if connStr == "" {
		t.Skip("PostgreSQL not available, skipping integration test")
	}
	return connStr
}
