package report

import (
	"math"
	"strings"
	"testing"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0.00"},
		{1234.5, "R$ 1234.50"},
		{0.005, "R$ 0.01"},
		{-12.3, "R$ -12.30"},
	}
	for _, tt := range tests {
		if got := Money(tt.in); got != tt.want {
			t.Errorf("Money(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuantity(t *testing.T) {
	if got := Quantity(41.27); got != "41.3" {
		t.Errorf("Quantity(41.27) = %q, want %q", got, "41.3")
	}
	if got := Quantity(math.NaN()); got != "-" {
		t.Errorf("Quantity(NaN) = %q, want %q", got, "-")
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(0.257); got != "25.7%" {
		t.Errorf("Percent(0.257) = %q, want %q", got, "25.7%")
	}
	if got := Percent(1); got != "100.0%" {
		t.Errorf("Percent(1) = %q, want %q", got, "100.0%")
	}
}

func TestTable(t *testing.T) {
	var buf strings.Builder
	err := Table(&buf, []string{"Month", "Revenue"}, [][]string{
		{"2024-01", "R$ 100.00"},
		{"2024-02", "R$ 250.00"},
	})
	if err != nil {
		t.Fatalf("Table failed: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Month") || !strings.Contains(lines[0], "Revenue") {
		t.Errorf("Bad header line: %q", lines[0])
	}

	// Columns are aligned: "Revenue" starts at the same offset in every line.
	col := strings.Index(lines[0], "Revenue")
	for _, line := range lines[1:] {
		if idx := strings.Index(line, "R$"); idx != col {
			t.Errorf("Misaligned column in %q: got offset %d, want %d", line, idx, col)
		}
	}
}
