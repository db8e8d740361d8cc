//-------------------------------------------------------------------------
//
// Petshop Insights Dashboard
//
// Copyright (c) 2025 - 2026, Breno Aliotti
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package datagen

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schollz/progressbar/v3"

	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/dataset"
	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/logging"
)

// Reference data for the fictional petshop.
var petTypes = []string{"Cachorro", "Gato", "Pássaro", "Peixe", "Roedor"}
var petTypeWeights = []int{45, 35, 8, 7, 5}

var categories = []string{"Ração", "Brinquedos", "Higiene", "Acessórios", "Saúde", "Serviços"}
var categoryWeights = []int{35, 15, 15, 12, 13, 10}

var productsByCategory = map[string][]string{
	"Ração":      {"Ração Premium 10kg", "Ração Filhotes 3kg", "Ração Light 7kg", "Sachê Carne", "Sachê Frango"},
	"Brinquedos": {"Bola de Borracha", "Mordedor de Corda", "Arranhador", "Ratinho de Pelúcia", "Frisbee"},
	"Higiene":    {"Shampoo Neutro", "Tapete Higiênico", "Areia Sanitária", "Escova de Pelos", "Lenço Umedecido"},
	"Acessórios": {"Coleira Ajustável", "Guia Retrátil", "Cama Pet M", "Comedouro Inox", "Casinha Plástica"},
	"Saúde":      {"Antipulgas", "Vermífugo", "Vitamina Pet", "Pomada Cicatrizante", "Suplemento Ômega 3"},
	"Serviços":   {"Banho", "Tosa Completa", "Banho e Tosa", "Consulta Veterinária", "Hotelzinho Diária"},
}

// Base unit price band per category, in currency units.
var priceBands = map[string][2]float64{
	"Ração":      {40, 220},
	"Brinquedos": {10, 80},
	"Higiene":    {8, 60},
	"Acessórios": {15, 150},
	"Saúde":      {25, 180},
	"Serviços":   {40, 250},
}

// Monthly demand multipliers: end-of-year peak, slow autumn, mirroring the
// seasonality of the original six-year dataset.
var monthWeights = []int{9, 8, 9, 8, 9, 8, 9, 10, 10, 11, 12, 16}

// Config controls generation.
type Config struct {
	// Years of history to generate, ending at the last full month.
	Years int

	// Customers is the size of the customer base.
	Customers int

	// Rows is the number of transactions to generate.
	Rows int

	// Seed makes generation reproducible when non-zero.
	Seed uint64
}

// DefaultConfig returns generation defaults sized like the original dataset.
func DefaultConfig() Config {
	return Config{
		Years:     6,
		Customers: 400,
		Rows:      12000,
	}
}

// Generator produces synthetic sales transactions.
type Generator struct {
	faker *Faker
	cfg   Config
}

// NewGenerator creates a generator for the given config.
func NewGenerator(cfg Config) *Generator {
	f := NewFaker()
	if cfg.Seed != 0 {
		f = NewFakerWithSeed(cfg.Seed)
	}
	return &Generator{faker: f, cfg: cfg}
}

// Transactions generates cfg.Rows sales with seasonal monthly demand and a
// mild upward trend across years, so the forecast pipeline has real structure
// to find.
func (g *Generator) Transactions() []dataset.Transaction {
	end := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(-g.cfg.Years, 0, 0)
	totalMonths := g.cfg.Years * 12

	monthIdx := make([]int, totalMonths)
	weights := make([]int, totalMonths)
	for i := 0; i < totalMonths; i++ {
		monthIdx[i] = i
		// Seasonal weight scaled by a slow year-on-year growth.
		growth := 100 + (i*30)/totalMonths
		weights[i] = monthWeights[i%12] * growth
	}

	txs := make([]dataset.Transaction, 0, g.cfg.Rows)
	for i := 0; i < g.cfg.Rows; i++ {
		mi := ChooseWeighted(g.faker, monthIdx, weights)
		monthStart := start.AddDate(0, mi, 0)
		saleDate := g.faker.DateRange(monthStart, monthStart.AddDate(0, 1, -1))

		category := ChooseWeighted(g.faker, categories, categoryWeights)
		band := priceBands[category]
		unitPrice := g.faker.Price(band[0], band[1])
		quantity := ChooseWeighted(g.faker, []int{1, 2, 3, 4, 5}, []int{55, 22, 12, 7, 4})

		txs = append(txs, dataset.Transaction{
			CustomerID: fmt.Sprintf("C%04d", g.faker.Int(1, g.cfg.Customers)),
			SaleDate:   time.Date(saleDate.Year(), saleDate.Month(), saleDate.Day(), 0, 0, 0, 0, time.UTC),
			PetType:    ChooseWeighted(g.faker, petTypes, petTypeWeights),
			Category:   category,
			Product:    Choose(g.faker, productsByCategory[category]),
			Quantity:   quantity,
			TotalValue: math.Round(unitPrice*float64(quantity)*100) / 100,
		})
	}
	return txs
}

// WriteCSV writes the transactions in the original dataset's CSV layout.
func WriteCSV(path string, txs []dataset.Transaction) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	header := []string{
		"Data da Venda", "ID do Cliente", "Tipo de Pet",
		"Categoria", "Produto", "Quantidade", "Valor Total",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	bar := progressbar.Default(int64(len(txs)), "writing sales")
	for _, tx := range txs {
		record := []string{
			tx.SaleDate.Format("2006-01-02"),
			tx.CustomerID,
			tx.PetType,
			tx.Category,
			tx.Product,
			fmt.Sprintf("%d", tx.Quantity),
			fmt.Sprintf("%.2f", tx.TotalValue),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
		_ = bar.Add(1)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush CSV: %w", err)
	}

	logging.Info().Str("path", path).Int("rows", len(txs)).Msg("Wrote sales CSV")
	return nil
}

// SeedPostgres creates the sales table if needed and bulk-loads the
// transactions with COPY.
func SeedPostgres(ctx context.Context, pool *pgxpool.Pool, table string, txs []dataset.Transaction) error {
	schema := fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            sale_date   date NOT NULL,
            customer_id text NOT NULL,
            pet_type    text NOT NULL,
            category    text NOT NULL,
            product     text NOT NULL,
            quantity    integer NOT NULL CHECK (quantity >= 1),
            total_value numeric(12,2) NOT NULL CHECK (total_value >= 0)
        )
    `, pgx.Identifier{table}.Sanitize())
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}

	rows := make([][]any, len(txs))
	for i, tx := range txs {
		rows[i] = []any{
			tx.SaleDate, tx.CustomerID, tx.PetType,
			tx.Category, tx.Product, tx.Quantity, tx.TotalValue,
		}
	}

	copied, err := pool.CopyFrom(ctx, pgx.Identifier{table},
		[]string{"sale_date", "customer_id", "pet_type", "category", "product", "quantity", "total_value"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copy sales into %s: %w", table, err)
	}

	logging.Info().Str("table", table).Int64("rows", copied).Msg("Seeded sales table")
	return nil
}
