package charts

import (
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"listing-profiler/models"
	"listing-profiler/table"
)

// box draws a horizontal box plot of spec.X. Whiskers reach the furthest
// point within 1.5 IQR of the box; points beyond are drawn as fliers.
func (r *Renderer) box(spec models.ChartSpec, t *table.Table) (*plot.Plot, error) {
	vals, err := finiteValues(t, spec.X)
	if err != nil {
		return nil, err
	}

	p := r.Theme.newPlot(spec, spec.X, "")
	b, err := plotter.NewBoxPlot(vg.Points(150*orDefault(spec.Width, 0.5)), 0, vals)
	if err != nil {
		return nil, err
	}
	b.Horizontal = true
	b.FillColor = ParseColor(spec.Color, r.Theme.Color(0))

	line := draw.LineStyle{Color: r.Theme.Edge, Width: vg.Points(orDefault(spec.LineWidth, 1))}
	b.BoxStyle = line
	b.MedianStyle = line
	b.WhiskerStyle = line
	b.GlyphStyle.Color = r.Theme.Edge
	b.GlyphStyle.Radius = vg.Points(orDefault(spec.FlierSize, 5) / 2)
	b.GlyphStyle.Shape = draw.RingGlyph{}
	p.Add(b)

	if spec.ShowMeans {
		mean, err := plotter.NewScatter(plotter.XYs{{X: stat.Mean(vals, nil), Y: 0}})
		if err != nil {
			return nil, err
		}
		mean.GlyphStyle = draw.GlyphStyle{
			Color:  r.Theme.Color(2),
			Radius: vg.Points(4),
			Shape:  draw.TriangleGlyph{},
		}
		p.Add(mean)
		p.Legend.Add("mean", mean)
		p.Legend.Top = true
	}
	p.HideY()
	return p, nil
}

// histogram draws the distribution of spec.X. Explicit edges in spec.Bins
// take precedence over spec.BinCount; values outside the edges are dropped.
func (r *Renderer) histogram(spec models.ChartSpec, t *table.Table) (*plot.Plot, error) {
	vals, err := finiteValues(t, spec.X)
	if err != nil {
		return nil, err
	}

	var h *plotter.Histogram
	if len(spec.Bins) > 1 {
		h, err = edgeHistogram(vals, spec.Bins)
	} else {
		n := spec.BinCount
		if n <= 0 {
			n = sturges(len(vals))
		}
		h, err = plotter.NewHist(vals, n)
	}
	if err != nil {
		return nil, err
	}
	h.FillColor = withAlpha(ParseColor(spec.Color, r.Theme.Color(0)), spec.Alpha)
	h.LineStyle.Color = ParseColor(spec.EdgeColor, color.White)
	h.LineStyle.Width = vg.Points(orDefault(spec.LineWidth, 1))

	p := r.Theme.newPlot(spec, spec.X, "Count")
	p.Add(h)

	if spec.KDE && len(h.Bins) > 0 {
		lo, hi := h.Bins[0].Min, h.Bins[len(h.Bins)-1].Max
		inRange := make([]float64, 0, len(vals))
		for _, v := range vals {
			if v >= lo && v <= hi {
				inRange = append(inRange, v)
			}
		}
		width := (hi - lo) / float64(len(h.Bins))
		if curve := kde(inRange, lo, hi, 200, float64(len(inRange))*width); curve != nil {
			l, err := plotter.NewLine(curve)
			if err != nil {
				return nil, err
			}
			l.LineStyle.Color = ParseColor(spec.Color, r.Theme.Color(0))
			l.LineStyle.Width = vg.Points(2)
			p.Add(l)
		}
	}
	return p, nil
}

// edgeHistogram counts vals into the bins given by ascending edges. The
// last bin includes its upper edge.
func edgeHistogram(vals []float64, edges []float64) (*plotter.Histogram, error) {
	if !sort.Float64sAreSorted(edges) {
		return nil, fmt.Errorf("histogram bin edges must be ascending: %v", edges)
	}
	bins := make([]plotter.HistogramBin, len(edges)-1)
	for i := range bins {
		bins[i].Min, bins[i].Max = edges[i], edges[i+1]
	}
	last := len(edges) - 1
	for _, v := range vals {
		if v < edges[0] || v > edges[last] {
			continue
		}
		i := sort.Search(len(edges), func(k int) bool { return edges[k] > v }) - 1
		if i >= len(bins) {
			i = len(bins) - 1
		}
		bins[i].Weight++
	}
	return &plotter.Histogram{
		Bins:      bins,
		Width:     (edges[last] - edges[0]) / float64(len(bins)),
		FillColor: color.Gray{Y: 128},
		LineStyle: plotter.DefaultLineStyle,
	}, nil
}
