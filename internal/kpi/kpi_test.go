package kpi_test

import (
	"reflect"
	"testing"

	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/dataset"
	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/kpi"
	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/testutil"
)

func fixtureTransactions() []dataset.Transaction {
	return []dataset.Transaction{
		testutil.Tx("C0001", "2023-01-10", "Cachorro", "Ração", "Ração Premium 10kg", 2, 200),
		testutil.Tx("C0002", "2023-01-25", "Gato", "Brinquedos", "Bolinha", 5, 50),
		testutil.Tx("C0001", "2023-06-05", "Cachorro", "Higiene", "Shampoo Neutro", 1, 30),
		testutil.Tx("C0003", "2024-01-15", "Gato", "Ração", "Ração Premium 10kg", 3, 300),
		testutil.Tx("C0002", "2024-12-20", "Pássaro", "Ração", "Alpiste 500g", 4, 20),
	}
}

func TestComputeOverview(t *testing.T) {
	o := kpi.Compute(fixtureTransactions())

	if o.SaleCount != 5 {
		t.Errorf("Expected 5 sales, got %d", o.SaleCount)
	}
	if o.TotalRevenue != 600 {
		t.Errorf("Expected total revenue 600, got %f", o.TotalRevenue)
	}
	if o.AverageTicket != 120 {
		t.Errorf("Expected average ticket 120, got %f", o.AverageTicket)
	}
}

func TestComputeOverviewEmpty(t *testing.T) {
	o := kpi.Compute(nil)

	if o.SaleCount != 0 || o.TotalRevenue != 0 || o.AverageTicket != 0 {
		t.Errorf("Expected zero overview for empty input, got %+v", o)
	}
}

func TestFilterYear(t *testing.T) {
	txs := fixtureTransactions()

	got := kpi.FilterYear(txs, 2023)
	if len(got) != 3 {
		t.Errorf("Expected 3 transactions in 2023, got %d", len(got))
	}
	for _, tx := range got {
		if tx.SaleDate.Year() != 2023 {
			t.Errorf("Transaction from year %d leaked through filter", tx.SaleDate.Year())
		}
	}

	// Year zero means no filtering.
	if got := kpi.FilterYear(txs, 0); len(got) != len(txs) {
		t.Errorf("Expected all %d transactions for year 0, got %d", len(txs), len(got))
	}

	if got := kpi.FilterYear(txs, 2030); got != nil {
		t.Errorf("Expected nil for absent year, got %v", got)
	}
}

func TestYears(t *testing.T) {
	got := kpi.Years(fixtureTransactions())
	want := []int{2023, 2024}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected years %v, got %v", want, got)
	}
}

func TestRevenueByCalendarMonth(t *testing.T) {
	got := kpi.RevenueByCalendarMonth(fixtureTransactions())

	// January totals span both years.
	if got[0] != 550 {
		t.Errorf("Expected January revenue 550, got %f", got[0])
	}
	if got[5] != 30 {
		t.Errorf("Expected June revenue 30, got %f", got[5])
	}
	if got[11] != 20 {
		t.Errorf("Expected December revenue 20, got %f", got[11])
	}
	for _, m := range []int{1, 2, 3, 4, 6, 7, 8, 9, 10} {
		if got[m] != 0 {
			t.Errorf("Expected zero revenue for month index %d, got %f", m, got[m])
		}
	}
}

func TestRevenueByCategory(t *testing.T) {
	got := kpi.RevenueByCategory(fixtureTransactions())
	want := []kpi.LabeledValue{
		{Label: "Ração", Value: 520},
		{Label: "Brinquedos", Value: 50},
		{Label: "Higiene", Value: 30},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestRevenueByPetType(t *testing.T) {
	got := kpi.RevenueByPetType(fixtureTransactions())
	want := []kpi.LabeledValue{
		{Label: "Gato", Value: 350},
		{Label: "Cachorro", Value: 230},
		{Label: "Pássaro", Value: 20},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestTopProducts(t *testing.T) {
	ds := &dataset.Dataset{Transactions: fixtureTransactions(), HasQuantity: true}

	got := kpi.TopProducts(ds, 2)
	want := []kpi.LabeledValue{
		{Label: "Bolinha", Value: 5},
		{Label: "Ração Premium 10kg", Value: 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	// Asking for more products than exist returns them all.
	if got := kpi.TopProducts(ds, 10); len(got) != 4 {
		t.Errorf("Expected 4 products, got %d", len(got))
	}
}

func TestTopProductsWithoutQuantity(t *testing.T) {
	ds := &dataset.Dataset{Transactions: fixtureTransactions(), HasQuantity: false}
	if got := kpi.TopProducts(ds, 5); got != nil {
		t.Errorf("Expected nil without quantity data, got %v", got)
	}
}
