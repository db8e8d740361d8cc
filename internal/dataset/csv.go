package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/logging"
)

// CSVOptions holds options for CSV loading. Column names default to the
// headers of the original petshop dataset (vendas_petshop_6anos.csv).
type CSVOptions struct {
	DateColumn     string
	CustomerColumn string
	PetTypeColumn  string
	CategoryColumn string
	ProductColumn  string
	QuantityColumn string // optional in the source; see Dataset.HasQuantity
	ValueColumn    string
	DateFormat     string
	Progress       bool // render a byte progress bar while reading
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		DateColumn:     "Data da Venda",
		CustomerColumn: "ID do Cliente",
		PetTypeColumn:  "Tipo de Pet",
		CategoryColumn: "Categoria",
		ProductColumn:  "Produto",
		QuantityColumn: "Quantidade",
		ValueColumn:    "Valor Total",
		DateFormat:     "2006-01-02",
	}
}

// CSVSource loads transactions from a CSV file.
type CSVSource struct {
	Path string
	Opts CSVOptions
}

// NewCSVSource creates a CSV source for the given path.
func NewCSVSource(path string, opts CSVOptions) *CSVSource {
	if opts.DateFormat == "" {
		opts.DateFormat = "2006-01-02"
	}
	return &CSVSource{Path: path, Opts: opts}
}

// Identity keys the cache on path, size and modification time, so the memoized
// dataset survives for as long as the underlying file is unchanged.
func (s *CSVSource) Identity() (string, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", s.Path, err)
	}
	return fmt.Sprintf("csv:%s:%d:%d", s.Path, info.Size(), info.ModTime().UnixNano()), nil
}

// Load reads the whole file into a Dataset. Rows that fail to parse or
// violate the ingest invariants are skipped and counted, not fatal.
func (s *CSVSource) Load(ctx context.Context) (*Dataset, error) {
	identity, err := s.Identity()
	if err != nil {
		return nil, err
	}

	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer file.Close()

	var reader io.Reader = file
	if s.Opts.Progress {
		if info, err := file.Stat(); err == nil {
			bar := progressbar.DefaultBytes(info.Size(), "loading sales")
			reader = io.TeeReader(file, bar)
		}
	}

	ds, err := readCSV(ctx, reader, s.Opts)
	if err != nil {
		return nil, err
	}
	ds.Identity = identity

	logging.Info().
		Str("path", s.Path).
		Int("transactions", len(ds.Transactions)).
		Int("skipped", ds.SkippedRows).
		Bool("has_quantity", ds.HasQuantity).
		Msg("Loaded sales CSV")

	return ds, nil
}

func readCSV(ctx context.Context, r io.Reader, opts CSVOptions) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	required := []string{
		opts.DateColumn, opts.CustomerColumn, opts.PetTypeColumn,
		opts.CategoryColumn, opts.ProductColumn, opts.ValueColumn,
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, &MissingColumnError{Column: name}
		}
	}

	// Quantity is not guaranteed by every dataset. Its absence disables
	// quantity-derived outputs downstream instead of failing the load.
	qtyIdx, hasQuantity := cols[opts.QuantityColumn]
	if !hasQuantity {
		logging.Warn().
			Str("column", opts.QuantityColumn).
			Msg("Quantity column missing; stock estimates will be unavailable")
	}

	ds := &Dataset{HasQuantity: hasQuantity}
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row: %w", err)
		}
		line++

		tx, ok := parseRow(record, cols, qtyIdx, hasQuantity, opts)
		if !ok {
			ds.SkippedRows++
			logging.Debug().Int("line", line).Msg("Skipping invalid sales row")
			continue
		}
		ds.Transactions = append(ds.Transactions, tx)
	}

	if ds.SkippedRows > 0 {
		logging.Warn().
			Int("skipped", ds.SkippedRows).
			Msg("Some sales rows were invalid and ignored")
	}

	return ds, nil
}

func parseRow(record []string, cols map[string]int, qtyIdx int, hasQuantity bool, opts CSVOptions) (Transaction, bool) {
	field := func(idx int) (string, bool) {
		if idx < 0 || idx >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[idx]), true
	}

	var tx Transaction

	raw, ok := field(cols[opts.DateColumn])
	if !ok {
		return tx, false
	}
	date, err := time.Parse(opts.DateFormat, raw)
	if err != nil {
		return tx, false
	}
	tx.SaleDate = date

	if tx.CustomerID, ok = field(cols[opts.CustomerColumn]); !ok || tx.CustomerID == "" {
		return tx, false
	}
	if tx.PetType, ok = field(cols[opts.PetTypeColumn]); !ok {
		return tx, false
	}
	if tx.Category, ok = field(cols[opts.CategoryColumn]); !ok {
		return tx, false
	}
	if tx.Product, ok = field(cols[opts.ProductColumn]); !ok {
		return tx, false
	}

	raw, ok = field(cols[opts.ValueColumn])
	if !ok {
		return tx, false
	}
	if tx.TotalValue, err = strconv.ParseFloat(raw, 64); err != nil {
		return tx, false
	}

	if hasQuantity {
		raw, ok = field(qtyIdx)
		if !ok {
			return tx, false
		}
		if tx.Quantity, err = strconv.Atoi(raw); err != nil {
			return tx, false
		}
	}

	if !validRow(tx.TotalValue, tx.Quantity, hasQuantity) {
		return tx, false
	}
	return tx, true
}
