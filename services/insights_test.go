package services

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"listing-profiler/table"
)

func sampleListings(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		table.NewText("id", table.Identifier, []string{"1", "2", "3", "4", "5", "6", "7"}),
		table.NewText("neighbourhood_group", table.Categorical,
			[]string{"Brooklyn", "Manhattan", "Brooklyn", "Queens", "", "Manhattan", "Brooklyn"}),
		table.NewNumeric("price", []float64{100, 300, 200, 80, 90, math.NaN(), 60}),
		table.NewNumeric("beds", []float64{1, 2, 2, 1, 1, 3, 0}),
	)
	if err != nil {
		t.Fatalf("table.New: %v", err)
	}
	return tbl
}

func TestInspectShape(t *testing.T) {
	tbl := sampleListings(t)
	svc := NewInsightService(newTestLogger())
	p := svc.Inspect(tbl, 5)

	if p.Rows != 7 || p.Cols != 4 {
		t.Errorf("shape: got %dx%d, want 7x4", p.Rows, p.Cols)
	}
	if p.Head.Len() != 5 || p.Tail.Len() != 5 {
		t.Errorf("head/tail: got %d/%d, want 5/5", p.Head.Len(), p.Tail.Len())
	}
	if got := p.Tail.Labels()[0]; got != 2 {
		t.Errorf("first tail label: got %d, want 2", got)
	}
	if len(p.Numeric) != 2 {
		t.Errorf("numeric summaries: got %d, want 2", len(p.Numeric))
	}
	if len(p.Categorical) != 2 {
		t.Errorf("categorical summaries: got %d, want 2", len(p.Categorical))
	}
}

func TestInspectNulls(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	p := svc.Inspect(sampleListings(t), 5)

	want := map[string]int{"id": 0, "neighbourhood_group": 1, "price": 1, "beds": 0}
	for _, n := range p.Nulls {
		if n.Count != want[n.Column] {
			t.Errorf("nulls[%s]: got %d, want %d", n.Column, n.Count, want[n.Column])
		}
	}
}

func TestInspectDoesNotMutate(t *testing.T) {
	tbl := sampleListings(t)
	svc := NewInsightService(newTestLogger())
	_ = svc.Inspect(tbl, 3)
	if tbl.Len() != 7 {
		t.Errorf("Len after Inspect: got %d, want 7", tbl.Len())
	}
}

func TestPrintPlain(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	svc.Color = false

	var buf bytes.Buffer
	svc.Print(&buf, svc.Inspect(sampleListings(t), 5))
	out := buf.String()

	for _, want := range []string{"DATASET PROFILE", "Rows    : 7", "Numeric summary", "price", "Missing values"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("plain output contains ANSI escapes")
	}
}

func TestPrintGroups(t *testing.T) {
	tbl := sampleListings(t)
	agg, err := tbl.GroupMean("neighbourhood_group", "price")
	if err != nil {
		t.Fatalf("GroupMean: %v", err)
	}

	svc := NewInsightService(newTestLogger())
	svc.Color = false
	var buf bytes.Buffer
	svc.PrintGroups(&buf, "Average price", agg)
	out := buf.String()

	for _, want := range []string{"Brooklyn", "120.00", "Manhattan", "300.00", "Queens", "80.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"Entire home/apt", 10, "Entire ..."},
		{"Café au lait", 7, "Café..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q; want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
