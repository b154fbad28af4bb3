package services

import (
	"errors"
	"math"
	"testing"

	"listing-profiler/table"
	"listing-profiler/utils"
)

func newTestLogger() *utils.Logger { return utils.NewNopLogger() }

func dirtyListings(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		table.NewNumeric("id", []float64{1, 2, 2, 3, 4}),
		table.NewNumeric("host_id", []float64{10, 20, 20, 30, 40}),
		table.NewText("neighbourhood_group", table.Categorical, []string{"Brooklyn", "Manhattan", "Manhattan", "", "Queens"}),
		table.NewNumeric("price", []float64{100, 250, 250, 80, math.NaN()}),
		table.NewNumeric("beds", []float64{2, 1, 1, 1, 3}),
	)
	if err != nil {
		t.Fatalf("table.New: %v", err)
	}
	return tbl
}

func TestCleanerClean(t *testing.T) {
	tbl := dirtyListings(t)
	c := NewCleaner(newTestLogger())

	s, err := c.Clean(tbl, []string{"id", "host_id"})
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"RowsBefore", s.RowsBefore, 5},
		{"RowsAfter", s.RowsAfter, 2},
		{"MissingRows", s.MissingRows, 2},
		{"DuplicateRows", s.DuplicateRows, 1},
		{"DuplicatesBefore", s.DuplicatesBefore, 1},
		{"DuplicatesAfter", s.DuplicatesAfter, 0},
		{"Len", tbl.Len(), 2},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, tt.got, tt.want)
		}
	}

	for _, n := range s.NullsAfter {
		if n.Count != 0 {
			t.Errorf("column %s still has %d nulls", n.Column, n.Count)
		}
	}
}

func TestCleanerCoercesIdentifiers(t *testing.T) {
	tbl := dirtyListings(t)
	c := NewCleaner(newTestLogger())

	s, err := c.Clean(tbl, []string{"id", "host_id", "listing_url"})
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(s.Coerced) != 2 {
		t.Errorf("Coerced: got %v, want [id host_id]", s.Coerced)
	}

	if _, err := tbl.Floats("id"); !errors.Is(err, table.ErrNotNumeric) {
		t.Errorf("Floats(id) after coercion: got %v, want ErrNotNumeric", err)
	}
	col, _ := tbl.Column("host_id")
	if got := col.Text(0); got != "10" {
		t.Errorf("host_id[0]: got %q, want %q", got, "10")
	}
}

func TestCleanerIdempotent(t *testing.T) {
	tbl := dirtyListings(t)
	c := NewCleaner(newTestLogger())

	if _, err := c.Clean(tbl, nil); err != nil {
		t.Fatalf("first Clean: %v", err)
	}
	s, err := c.Clean(tbl, nil)
	if err != nil {
		t.Fatalf("second Clean: %v", err)
	}
	if s.MissingRows != 0 || s.DuplicateRows != 0 {
		t.Errorf("second Clean removed rows: %+v", s)
	}
}
