package charts

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"listing-profiler/models"
	"listing-profiler/table"
)

// bar draws the mean of spec.Y for each category of spec.X, split into side
// by side bars per spec.Hue level when set. Missing combinations draw as 0.
func (r *Renderer) bar(spec models.ChartSpec, t *table.Table) (*plot.Plot, error) {
	keys := []string{spec.X}
	if spec.Hue != "" {
		keys = append(keys, spec.Hue)
	}
	agg, err := t.GroupMeanBy(spec.Y, keys...)
	if err != nil {
		return nil, err
	}
	if len(agg.Groups) == 0 {
		return nil, ErrNoData
	}

	cats := agg.Levels(0)
	hues := []string{""}
	if spec.Hue != "" {
		hues = agg.Levels(1)
	}

	p := r.Theme.newPlot(spec, spec.X, "mean "+spec.Y)
	width := vg.Points(math.Min(40, 160/float64(len(hues))))
	for k, hue := range hues {
		vals := make(plotter.Values, len(cats))
		for i, cat := range cats {
			key := []string{cat}
			if spec.Hue != "" {
				key = append(key, hue)
			}
			if m, ok := agg.Mean(key...); ok && !math.IsNaN(m) {
				vals[i] = m
			}
		}
		bars, err := plotter.NewBarChart(vals, width)
		if err != nil {
			return nil, err
		}
		bars.Color = r.Theme.Color(k)
		if len(hues) == 1 {
			bars.Color = ParseColor(spec.Color, r.Theme.Color(0))
		}
		bars.LineStyle.Width = 0
		bars.Offset = vg.Length(float64(k)-float64(len(hues)-1)/2) * width
		p.Add(bars)
		if spec.Hue != "" {
			p.Legend.Add(hue, bars)
		}
	}
	p.Legend.Top = true
	p.NominalX(cats...)
	return p, nil
}

// scatter draws spec.Y against spec.X, one colour per spec.Hue level.
func (r *Renderer) scatter(spec models.ChartSpec, t *table.Table) (*plot.Plot, error) {
	groups, err := pointsByHue(t, spec.X, spec.Y, spec.Hue)
	if err != nil {
		return nil, err
	}

	p := r.Theme.newPlot(spec, spec.X, spec.Y)
	for k, g := range groups {
		s, err := plotter.NewScatter(g.XYs)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle = draw.GlyphStyle{
			Color:  withAlpha(r.Theme.Color(k), orDefault(spec.Alpha, 0.8)),
			Radius: vg.Points(2.5),
			Shape:  draw.CircleGlyph{},
		}
		if spec.Hue == "" {
			s.GlyphStyle.Color = withAlpha(ParseColor(spec.Color, r.Theme.Color(0)), orDefault(spec.Alpha, 0.8))
		}
		p.Add(s)
		if spec.Hue != "" {
			p.Legend.Add(g.Level, s)
		}
	}
	p.Legend.Top = true
	return p, nil
}
