package charts

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"listing-profiler/models"
	"listing-profiler/table"
)

// pair draws a grid over spec.Vars: histograms on the diagonal, scatter
// plots elsewhere, coloured by spec.Hue. The grid is written straight to path.
func (r *Renderer) pair(spec models.ChartSpec, t *table.Table, w, h vg.Length, path string) error {
	n := len(spec.Vars)
	if n == 0 {
		return ErrNoData
	}

	plots := make([][]*plot.Plot, n)
	for row, yv := range spec.Vars {
		plots[row] = make([]*plot.Plot, n)
		for col, xv := range spec.Vars {
			cell := models.ChartSpec{TitleSize: 8, LabelSize: 8}
			xLabel, yLabel := "", ""
			if row == n-1 {
				xLabel = xv
			}
			if col == 0 {
				yLabel = yv
			}

			var (
				p   *plot.Plot
				err error
			)
			if row == col {
				p, err = r.pairDiagonal(cell, t, xv, spec.Hue, xLabel, yLabel)
			} else {
				legend := spec.Hue != "" && row == 0 && col == n-1
				p, err = r.pairScatter(cell, t, xv, yv, spec.Hue, xLabel, yLabel, legend)
			}
			if err != nil {
				return fmt.Errorf("cell %s x %s: %w", yv, xv, err)
			}
			plots[row][col] = p
		}
	}

	format := strings.TrimPrefix(filepath.Ext(path), ".")
	img, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return err
	}
	dc := draw.New(img)

	titleStyle := plot.New().Title.TextStyle
	titleStyle.Font.Size = vg.Points(orDefault(spec.TitleSize, 14))
	pad := vg.Millimeter * 2
	top := pad
	if spec.Title != "" {
		top += titleStyle.Height(spec.Title) + pad
		pt := vg.Point{
			X: dc.Min.X + (dc.Max.X-dc.Min.X-titleStyle.Width(spec.Title))/2,
			Y: dc.Max.Y - pad - titleStyle.Height(spec.Title),
		}
		dc.FillText(titleStyle, pt, spec.Title)
	}

	tiles := draw.Tiles{Rows: n, Cols: n, PadX: pad, PadY: pad, PadTop: top, PadBottom: pad, PadLeft: pad, PadRight: pad}
	canvases := plot.Align(plots, tiles, dc)
	for row := range plots {
		for col := range plots[row] {
			plots[row][col].Draw(canvases[row][col])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := img.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (r *Renderer) pairDiagonal(cell models.ChartSpec, t *table.Table, x, hue, xLabel, yLabel string) (*plot.Plot, error) {
	groups, err := pointsByHue(t, x, "", hue)
	if err != nil {
		return nil, err
	}
	p := r.Theme.newPlot(cell, xLabel, yLabel)
	for k, g := range groups {
		h, err := plotter.NewHist(g.X, sturges(len(g.X)))
		if err != nil {
			return nil, err
		}
		h.FillColor = withAlpha(r.Theme.Color(k), 0.5)
		h.LineStyle.Width = 0
		p.Add(h)
	}
	return p, nil
}

func (r *Renderer) pairScatter(cell models.ChartSpec, t *table.Table, x, y, hue, xLabel, yLabel string, legend bool) (*plot.Plot, error) {
	groups, err := pointsByHue(t, x, y, hue)
	if err != nil {
		return nil, err
	}
	p := r.Theme.newPlot(cell, xLabel, yLabel)
	for k, g := range groups {
		s, err := plotter.NewScatter(g.XYs)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle = draw.GlyphStyle{Color: withAlpha(r.Theme.Color(k), 0.7), Radius: vg.Points(1.5), Shape: draw.CircleGlyph{}}
		p.Add(s)
		if legend {
			p.Legend.Add(g.Level, s)
		}
	}
	p.Legend.Top = true
	return p, nil
}

// corrGrid adapts a correlation matrix to plotter.GridXYZ with the first
// variable in the top row.
type corrGrid struct{ m *table.CorrMatrix }

func (g corrGrid) Dims() (c, r int) { return len(g.m.Names), len(g.m.Names) }
func (g corrGrid) Z(c, r int) float64 {
	return g.m.At(len(g.m.Names)-1-r, c)
}
func (g corrGrid) X(c int) float64 { return float64(c) }
func (g corrGrid) Y(r int) float64 { return float64(r) }

// heatmap correlates spec.Vars over t and draws the matrix on a blue-red
// scale from -1 to 1, with the coefficients written in each cell when
// spec.Annotate is set.
func (r *Renderer) heatmap(spec models.ChartSpec, t *table.Table) (*plot.Plot, error) {
	m, err := t.Correlate(spec.Vars...)
	if err != nil {
		return nil, err
	}
	return r.corrHeatmap(spec, m)
}

func (r *Renderer) corrHeatmap(spec models.ChartSpec, m *table.CorrMatrix) (*plot.Plot, error) {
	n := len(m.Names)
	if n == 0 {
		return nil, ErrNoData
	}

	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(-1)
	cmap.SetMax(1)
	hm := plotter.NewHeatMap(corrGrid{m: m}, cmap.Palette(255))
	hm.Min, hm.Max = -1, 1
	hm.NaN = r.Theme.Background

	p := r.Theme.newPlot(spec, "", "")
	p.Add(hm)

	if spec.Annotate {
		xys := make(plotter.XYs, 0, n*n)
		labels := make([]string, 0, n*n)
		for row := 0; row < n; row++ {
			for col := 0; col < n; col++ {
				xys = append(xys, plotter.XY{X: float64(col), Y: float64(n - 1 - row)})
				labels = append(labels, strconv.FormatFloat(m.At(row, col), 'f', 2, 64))
			}
		}
		l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
		if err != nil {
			return nil, err
		}
		for i := range l.TextStyle {
			l.TextStyle[i].XAlign = text.XCenter
			l.TextStyle[i].YAlign = text.YCenter
			l.TextStyle[i].Font.Size = vg.Points(8)
		}
		p.Add(l)
	}

	reversed := make([]string, n)
	for i, name := range m.Names {
		reversed[n-1-i] = name
	}
	p.NominalX(m.Names...)
	p.NominalY(reversed...)
	p.X.Tick.Label.Rotation = 0.6
	p.X.Tick.Label.XAlign = text.XRight
	return p, nil
}
