package services

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"listing-profiler/charts"
	"listing-profiler/config"
	"listing-profiler/models"
	"listing-profiler/report"
	"listing-profiler/table"
	"listing-profiler/utils"
)

// Profiler runs the exploratory pipeline over a loaded listings table.
type Profiler struct {
	cfg      *config.Config
	logger   *utils.Logger
	out      io.Writer
	console  *InsightService
	plain    *InsightService
	cleaner  *Cleaner
	renderer *charts.Renderer
	report   *report.Builder
}

// Result holds everything a run produced.
type Result struct {
	Profile            *models.Profile
	Clean              *models.CleanSummary
	Cleaned            *table.Table
	Filtered           *table.Table
	PriceByGroup       *table.GroupAggregate
	PricePerBedByGroup *table.GroupAggregate
	Correlation        *table.CorrMatrix
	Charts             []string
	ReportPath         string
}

// NewProfiler wires the services of one run. Console reports go to out.
func NewProfiler(cfg *config.Config, logger *utils.Logger, out io.Writer) (*Profiler, error) {
	switch cfg.PricePerBedSource {
	case config.PricePerBedCleaned, config.PricePerBedFiltered:
	default:
		return nil, fmt.Errorf("profiler: unknown price per bed source %q", cfg.PricePerBedSource)
	}
	renderer, err := charts.NewRenderer(cfg.ChartOutputDir, cfg.ChartFormat, logger)
	if err != nil {
		return nil, err
	}
	plain := NewInsightService(logger)
	plain.Color = false
	return &Profiler{
		cfg:      cfg,
		logger:   logger,
		out:      out,
		console:  NewInsightService(logger),
		plain:    plain,
		cleaner:  NewCleaner(logger),
		renderer: renderer,
		report:   report.NewBuilder("Listings profile", logger),
	}, nil
}

// emit prints to the console and adds the same text, uncoloured, to the
// report.
func (p *Profiler) emit(title string, print func(s *InsightService, w io.Writer)) {
	print(p.console, p.out)
	var buf bytes.Buffer
	print(p.plain, &buf)
	p.report.AddSection(title, buf.String())
}

// Run profiles t, cleans it in place, filters price outliers, derives price
// per bed, aggregates, correlates and renders every chart. Chart and PDF
// failures are logged and skipped.
func (p *Profiler) Run(ctx context.Context, t *table.Table) (*Result, error) {
	res := &Result{Cleaned: t}

	res.Profile = p.console.Inspect(t, p.cfg.HeadRows)
	p.emit("Dataset profile", func(s *InsightService, w io.Writer) { s.Print(w, res.Profile) })

	clean, err := p.cleaner.Clean(t, models.IdentifierColumns)
	if err != nil {
		return nil, fmt.Errorf("clean: %w", err)
	}
	res.Clean = clean
	p.emit("Cleaning", func(s *InsightService, w io.Writer) { s.PrintCleanSummary(w, clean) })

	filtered, err := t.Where(models.ColPrice, table.Less, p.cfg.PriceCeiling)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	res.Filtered = filtered
	p.logger.Info("[profiler] %d of %d listings priced below %.0f", filtered.Len(), t.Len(), p.cfg.PriceCeiling)

	p.render(res, filtered, distributionCharts()...)

	if res.PriceByGroup, err = filtered.GroupMean(models.ColNeighbourhoodGrp, models.ColPrice); err != nil {
		return nil, fmt.Errorf("group mean: %w", err)
	}
	p.emit("Average price by neighbourhood group", func(s *InsightService, w io.Writer) {
		s.PrintGroups(w, "Average price by neighbourhood group", res.PriceByGroup)
	})

	perBed := t
	if p.cfg.PricePerBedSource == config.PricePerBedFiltered {
		perBed = filtered
	}
	if err := perBed.DeriveColumn(models.ColPricePerBed, []string{models.ColPrice, models.ColBeds}, table.Ratio); err != nil {
		return nil, fmt.Errorf("derive %s: %w", models.ColPricePerBed, err)
	}
	if err := p.previewDerived(perBed); err != nil {
		return nil, err
	}
	if res.PricePerBedByGroup, err = perBed.GroupMean(models.ColNeighbourhoodGrp, models.ColPricePerBed); err != nil {
		return nil, fmt.Errorf("group mean: %w", err)
	}
	p.emit("Average price per bed by neighbourhood group", func(s *InsightService, w io.Writer) {
		s.PrintGroups(w, "Average price per bed by neighbourhood group", res.PricePerBedByGroup)
	})

	p.render(res, t, cleanedCharts()...)
	p.render(res, filtered, filteredCharts()...)

	if res.Correlation, err = filtered.Correlate(models.CorrelationColumns...); err != nil {
		return nil, fmt.Errorf("correlate: %w", err)
	}
	p.emit("Correlation", func(s *InsightService, w io.Writer) { s.PrintCorrelation(w, res.Correlation) })
	p.render(res, filtered, heatmapChart())

	if res.ReportPath, err = p.report.Write(p.cfg.ChartOutputDir); err != nil {
		p.logger.Error("[profiler] Report failed: %v", err)
		return res, nil
	}
	if p.cfg.ReportPDFPath != "" {
		exporter := report.NewPDFExporter(p.cfg.ChromeBin, p.cfg.MaxRetries, p.logger)
		if err := exporter.Export(ctx, res.ReportPath, p.cfg.ReportPDFPath); err != nil {
			p.logger.Error("[profiler] PDF export failed: %v", err)
		}
	}
	return res, nil
}

func (p *Profiler) previewDerived(t *table.Table) error {
	col, err := t.Select(models.ColPricePerBed)
	if err != nil {
		return fmt.Errorf("select %s: %w", models.ColPricePerBed, err)
	}
	head := col.Head(p.cfg.HeadRows)
	preview := t.Head(p.cfg.PreviewRows)
	p.emit("Price per bed", func(s *InsightService, w io.Writer) {
		s.PrintTable(w, "Price per bed (first rows)", head)
		s.PrintTable(w, fmt.Sprintf("First %d rows with price per bed", preview.Len()), preview)
	})
	return nil
}

func (p *Profiler) render(res *Result, t *table.Table, specs ...models.ChartSpec) {
	for _, spec := range specs {
		path, err := p.renderer.Render(spec, t)
		if err != nil {
			p.logger.Error("[profiler] Chart %s skipped: %v", spec.Name, err)
			continue
		}
		res.Charts = append(res.Charts, path)
		p.report.AddChart(firstNonEmpty(spec.Title, spec.Name), path)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// distributionCharts are drawn from the price-filtered table.
func distributionCharts() []models.ChartSpec {
	return []models.ChartSpec{
		{
			Kind: models.ChartBox, Name: "price_box",
			Title: "identifying outliers in price", XLabel: "Price",
			X: models.ColPrice, Color: "#FBAFE4",
			Width: 0.4, LineWidth: 1.2, FlierSize: 5, ShowMeans: true,
			TitleSize: 20, LabelSize: 10,
		},
		{
			Kind: models.ChartHistogram, Name: "price_hist",
			Title: "Price distribution", XLabel: "Price", YLabel: "Count",
			X:    models.ColPrice,
			Bins: []float64{0, 200, 400, 600, 800, 1000, 1200, 1400},
			Color: "#FFC400", EdgeColor: "white", Alpha: 0.7, LineWidth: 2, KDE: true,
			FigWidth: 8, FigHeight: 5, TitleSize: 20, LabelSize: 10,
		},
		{
			Kind: models.ChartHistogram, Name: "availability_hist",
			Title: "availability_365 Distribution", XLabel: "Availability_365", YLabel: "Frequency",
			X: models.ColAvailability365, Color: "orange",
			FigWidth: 6, FigHeight: 3, TitleSize: 20, LabelSize: 10,
		},
	}
}

// cleanedCharts are drawn from the cleaned, unfiltered table.
func cleanedCharts() []models.ChartSpec {
	return []models.ChartSpec{
		{
			Kind: models.ChartBar, Name: "price_by_group_room",
			Title:  "Average Price by Neighbourhood Group and Room Type",
			XLabel: "Neighbourhood Group", YLabel: "Average Price",
			X: models.ColNeighbourhoodGrp, Y: models.ColPrice, Hue: models.ColRoomType,
			FigWidth: 10, FigHeight: 6,
		},
		{
			Kind: models.ChartScatter, Name: "reviews_vs_price",
			Title: "Locality and Review Dependency",
			X:     models.ColNumberOfReviews, Y: models.ColPrice, Hue: models.ColNeighbourhoodGrp,
			FigWidth: 8, FigHeight: 5,
		},
	}
}

func filteredCharts() []models.ChartSpec {
	return []models.ChartSpec{
		{
			Kind: models.ChartPair, Name: "pairplot",
			Title: "Pairplot of Price, Minimum Nights, Number of Reviews, and Availability by Room Type",
			Vars:  models.PairColumns, Hue: models.ColRoomType,
		},
		{
			Kind: models.ChartScatter, Name: "geo_distribution",
			Title: "Geographical Distribution of AirBnb Listing",
			X:     models.ColLongitude, Y: models.ColLatitude, Hue: models.ColRoomType,
			FigWidth: 10, FigHeight: 7,
		},
	}
}

func heatmapChart() models.ChartSpec {
	return models.ChartSpec{
		Kind: models.ChartHeatmap, Name: "correlation_heatmap",
		Title:    "Correlation of listing features",
		Vars:     models.CorrelationColumns,
		Annotate: true,
		FigWidth: 8, FigHeight: 6,
	}
}
