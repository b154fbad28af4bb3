package charts

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/plotter"

	"listing-profiler/table"
)

// ErrNoData is returned when a chart has nothing to draw.
var ErrNoData = errors.New("charts: no data to plot")

// finiteValues returns the present, finite values of a numeric column.
func finiteValues(t *table.Table, name string) (plotter.Values, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	vals, err := c.Present()
	if err != nil {
		return nil, err
	}
	out := make(plotter.Values, 0, len(vals))
	for _, v := range vals {
		if !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: column %q", ErrNoData, name)
	}
	return out, nil
}

// hueGroup is the points of one hue level.
type hueGroup struct {
	Level string
	XYs   plotter.XYs
	X     plotter.Values
}

// pointsByHue pairs x and y per row, grouped by the hue column. Rows with a
// missing coordinate or hue are skipped. With no hue column there is one
// group with an empty level. y may be empty to collect x values only.
func pointsByHue(t *table.Table, x, y, hue string) ([]hueGroup, error) {
	xc, err := t.Column(x)
	if err != nil {
		return nil, err
	}
	if xc.Kind() != table.Numeric {
		return nil, &table.KindError{Column: x, Kind: xc.Kind()}
	}
	var yc, hc *table.Column
	if y != "" {
		if yc, err = t.Column(y); err != nil {
			return nil, err
		}
		if yc.Kind() != table.Numeric {
			return nil, &table.KindError{Column: y, Kind: yc.Kind()}
		}
	}
	if hue != "" {
		if hc, err = t.Column(hue); err != nil {
			return nil, err
		}
	}

	byLevel := make(map[string]*hueGroup)
	for i := 0; i < t.Len(); i++ {
		xv, ok := xc.Float(i)
		if !ok || math.IsInf(xv, 0) {
			continue
		}
		var yv float64
		if yc != nil {
			if yv, ok = yc.Float(i); !ok || math.IsInf(yv, 0) {
				continue
			}
		}
		level := ""
		if hc != nil {
			if hc.IsMissing(i) {
				continue
			}
			level = hc.Text(i)
		}
		g, ok := byLevel[level]
		if !ok {
			g = &hueGroup{Level: level}
			byLevel[level] = g
		}
		g.X = append(g.X, xv)
		g.XYs = append(g.XYs, plotter.XY{X: xv, Y: yv})
	}
	if len(byLevel) == 0 {
		return nil, fmt.Errorf("%w: columns %q, %q", ErrNoData, x, y)
	}

	out := make([]hueGroup, 0, len(byLevel))
	for _, g := range byLevel {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out, nil
}

// kde evaluates a Gaussian kernel density estimate of vals at n points
// between lo and hi, scaled by scale. The bandwidth follows Scott's rule.
func kde(vals []float64, lo, hi float64, n int, scale float64) plotter.XYs {
	if len(vals) < 2 || n < 2 || hi <= lo {
		return nil
	}
	bw := stat.StdDev(vals, nil) * math.Pow(float64(len(vals)), -0.2)
	if bw <= 0 || math.IsNaN(bw) {
		return nil
	}

	norm := scale / (float64(len(vals)) * bw * math.Sqrt(2*math.Pi))
	out := make(plotter.XYs, n)
	step := (hi - lo) / float64(n-1)
	for k := range out {
		x := lo + float64(k)*step
		var sum float64
		for _, v := range vals {
			u := (x - v) / bw
			sum += math.Exp(-0.5 * u * u)
		}
		out[k] = plotter.XY{X: x, Y: sum * norm}
	}
	return out
}

// sturges returns the default bin count for n observations.
func sturges(n int) int {
	if n < 2 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}
