package dataset_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/datagen"
	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/dataset"
	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/testutil"
)

func TestPostgresRoundTrip(t *testing.T) {
	connStr := testutil.SkipIfNoPostgres(t)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	table := fmt.Sprintf("petshop_test_%d", time.Now().UnixNano())
	defer func() {
		_, _ = pool.Exec(context.Background(), "DROP TABLE IF EXISTS "+table)
	}()

	gen := datagen.NewGenerator(datagen.Config{Years: 1, Customers: 20, Rows: 200, Seed: 42})
	txs := gen.Transactions()
	if err := datagen.SeedPostgres(ctx, pool, table, txs); err != nil {
		t.Fatalf("SeedPostgres failed: %v", err)
	}

	source := dataset.NewPostgresSource(connStr, table)
	ds, err := source.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(ds.Transactions) != len(txs) {
		t.Errorf("Expected %d transactions back, got %d", len(txs), len(ds.Transactions))
	}
	if !ds.HasQuantity {
		t.Error("Expected HasQuantity true for Postgres source")
	}

	// Rows come back ordered by sale date.
	for i := 1; i < len(ds.Transactions); i++ {
		if ds.Transactions[i].SaleDate.Before(ds.Transactions[i-1].SaleDate) {
			t.Fatal("Expected transactions ordered by sale date")
		}
	}
}
