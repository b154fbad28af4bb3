package services

import (
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"listing-profiler/config"
	"listing-profiler/models"
	"listing-profiler/table"
)

func listingsFixture(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		table.NewNumeric("id", []float64{1, 2, 3, 4, 5, 6, 7, 8, 8, 9}),
		table.NewNumeric("host_id", []float64{11, 12, 13, 14, 15, 16, 17, 18, 18, 19}),
		table.NewText("neighbourhood_group", table.Categorical, []string{
			"Brooklyn", "Manhattan", "Brooklyn", "Queens", "Manhattan", "Queens", "Brooklyn", "Manhattan", "Manhattan", "Bronx"}),
		table.NewText("room_type", table.Categorical, []string{
			"Private room", "Entire home/apt", "Entire home/apt", "Private room", "Private room",
			"Entire home/apt", "Private room", "Entire home/apt", "Entire home/apt", "Private room"}),
		table.NewNumeric("latitude", []float64{40.64, 40.75, 40.80, 40.68, 40.79, 40.74, 40.69, 40.80, 40.80, 40.85}),
		table.NewNumeric("longitude", []float64{-73.97, -73.98, -73.94, -73.95, -73.94, -73.97, -73.95, -73.93, -73.93, -73.90}),
		table.NewNumeric("price", []float64{150, 225, 300, 90, 80, 200, 60, 2000, 2000, math.NaN()}),
		table.NewNumeric("beds", []float64{1, 2, 3, 0, 1, 2, 1, 4, 4, 1}),
		table.NewNumeric("minimum_nights", []float64{1, 3, 2, 1, 10, 2, 5, 30, 30, 1}),
		table.NewNumeric("number_of_reviews", []float64{9, 45, 0, 270, 9, 74, 49, 430, 430, 3}),
		table.NewNumeric("reviews_per_month", []float64{0.2, 0.4, 0.1, 4.6, 0.1, 0.6, 0.4, 3.5, 3.5, 0.1}),
		table.NewNumeric("availability_365", []float64{365, 355, 194, 0, 129, 220, 188, 6, 6, 10}),
	)
	if err != nil {
		t.Fatalf("table.New: %v", err)
	}
	return tbl
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		PriceCeiling:      1500,
		HeadRows:          5,
		PreviewRows:       40,
		PricePerBedSource: config.PricePerBedCleaned,
		ChartOutputDir:    filepath.Join(t.TempDir(), "charts"),
		ChartFormat:       "svg",
		MaxRetries:        1,
	}
}

func TestProfilerRun(t *testing.T) {
	cfg := testConfig(t)
	p, err := NewProfiler(cfg, newTestLogger(), io.Discard)
	if err != nil {
		t.Fatalf("NewProfiler: %v", err)
	}

	tbl := listingsFixture(t)
	res, err := p.Run(context.Background(), tbl)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Clean.MissingRows != 1 || res.Clean.DuplicateRows != 1 {
		t.Errorf("clean: got %d missing, %d duplicates; want 1, 1", res.Clean.MissingRows, res.Clean.DuplicateRows)
	}
	if res.Cleaned.Len() != 8 {
		t.Errorf("cleaned rows: got %d, want 8", res.Cleaned.Len())
	}
	if res.Filtered.Len() != 7 {
		t.Errorf("filtered rows: got %d, want 7", res.Filtered.Len())
	}

	if _, err := res.Cleaned.Floats(models.ColID); err == nil {
		t.Error("id should not be numeric after cleaning")
	}

	if m, ok := res.PriceByGroup.Mean("Manhattan"); !ok || m != 152.5 {
		t.Errorf("Manhattan mean price: got %v (%v), want 152.5", m, ok)
	}

	perBed, err := res.Cleaned.Floats(models.ColPricePerBed)
	if err != nil {
		t.Fatalf("price per bed: %v", err)
	}
	if !math.IsNaN(perBed[3]) {
		t.Errorf("price per bed with zero beds: got %v, want NaN", perBed[3])
	}
	if _, err := res.Filtered.Column(models.ColPricePerBed); err == nil {
		t.Error("price per bed should only be derived on the cleaned table")
	}
	if m, ok := res.PricePerBedByGroup.Mean("Brooklyn"); !ok || math.Abs(m-310.0/3) > 1e-9 {
		t.Errorf("Brooklyn price per bed: got %v (%v), want 103.33", m, ok)
	}

	if got := res.Correlation.At(2, 2); got != 1 {
		t.Errorf("price self-correlation: got %v, want 1", got)
	}

	for _, name := range []string{"price_box.svg", "price_hist.svg", "reviews_vs_price.svg", "correlation_heatmap.svg", "report.html"} {
		if _, err := os.Stat(filepath.Join(cfg.ChartOutputDir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	if res.ReportPath != filepath.Join(cfg.ChartOutputDir, "report.html") {
		t.Errorf("ReportPath: got %q", res.ReportPath)
	}
}

func TestProfilerPricePerBedOnFiltered(t *testing.T) {
	cfg := testConfig(t)
	cfg.PricePerBedSource = config.PricePerBedFiltered
	p, err := NewProfiler(cfg, newTestLogger(), io.Discard)
	if err != nil {
		t.Fatalf("NewProfiler: %v", err)
	}

	res, err := p.Run(context.Background(), listingsFixture(t))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := res.Filtered.Column(models.ColPricePerBed); err != nil {
		t.Errorf("price per bed missing on filtered table: %v", err)
	}
	if _, err := res.Cleaned.Column(models.ColPricePerBed); err == nil {
		t.Error("price per bed should not be derived on the cleaned table")
	}
	if m, ok := res.PricePerBedByGroup.Mean("Manhattan"); !ok || m != 96.25 {
		t.Errorf("Manhattan price per bed: got %v (%v), want 96.25", m, ok)
	}
}

func TestProfilerMissingColumn(t *testing.T) {
	p, err := NewProfiler(testConfig(t), newTestLogger(), io.Discard)
	if err != nil {
		t.Fatalf("NewProfiler: %v", err)
	}
	tbl, err := table.New(table.NewNumeric("beds", []float64{1, 2}))
	if err != nil {
		t.Fatalf("table.New: %v", err)
	}
	if _, err := p.Run(context.Background(), tbl); err == nil {
		t.Error("Run without a price column should fail")
	}
}

func TestNewProfilerRejectsPricePerBedSource(t *testing.T) {
	cfg := testConfig(t)
	cfg.PricePerBedSource = "raw"
	if _, err := NewProfiler(cfg, newTestLogger(), io.Discard); err == nil {
		t.Error("NewProfiler with an unknown price per bed source should fail")
	}
}
