package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/logging"
)

// PostgresSource loads transactions from a sales table in PostgreSQL.
// The table must carry the same columns as the CSV layout: sale_date,
// customer_id, pet_type, category, product, quantity, total_value.
type PostgresSource struct {
	ConnString string
	Table      string
}

// NewPostgresSource creates a Postgres source for the given table.
func NewPostgresSource(connString, table string) *PostgresSource {
	return &PostgresSource{ConnString: connString, Table: table}
}

// Identity keys the cache on connection string and table. Row-level change
// detection is deliberately not attempted; the cache TTL bounds staleness.
func (s *PostgresSource) Identity() (string, error) {
	return fmt.Sprintf("postgres:%s:%s", s.ConnString, s.Table), nil
}

// connect establishes a connection pool with analytics-appropriate limits.
func (s *PostgresSource) connect(ctx context.Context) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(s.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	// Single interactive user; a small pool is plenty.
	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	logging.Debug().
		Str("host", config.ConnConfig.Host).
		Str("database", config.ConnConfig.Database).
		Msg("Connecting to database")

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// Load reads the full sales table ordered by sale date.
func (s *PostgresSource) Load(ctx context.Context) (*Dataset, error) {
	identity, err := s.Identity()
	if err != nil {
		return nil, err
	}

	pool, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	query := fmt.Sprintf(`
        SELECT sale_date, customer_id, pet_type, category, product,
               quantity, total_value
        FROM %s
        ORDER BY sale_date
    `, pgx.Identifier{s.Table}.Sanitize())

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.Table, err)
	}
	defer rows.Close()

	ds := &Dataset{HasQuantity: true, Identity: identity}
	for rows.Next() {
		var tx Transaction
		err := rows.Scan(&tx.SaleDate, &tx.CustomerID, &tx.PetType,
			&tx.Category, &tx.Product, &tx.Quantity, &tx.TotalValue)
		if err != nil {
			return nil, fmt.Errorf("scan sales row: %w", err)
		}
		if !validRow(tx.TotalValue, tx.Quantity, true) {
			ds.SkippedRows++
			continue
		}
		ds.Transactions = append(ds.Transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read sales rows: %w", err)
	}

	logging.Info().
		Str("table", s.Table).
		Int("transactions", len(ds.Transactions)).
		Int("skipped", ds.SkippedRows).
		Msg("Loaded sales from PostgreSQL")

	return ds, nil
}
