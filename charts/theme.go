package charts

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"listing-profiler/models"
)

// Theme holds the shared look of every chart.
type Theme struct {
	Background color.Color
	Grid       color.Color
	Edge       color.Color
	Palette    []color.Color
	TitleSize  float64
	LabelSize  float64
}

// DarkGrid is a grey background with white grid lines and a ten colour
// categorical palette.
func DarkGrid() Theme {
	return Theme{
		Background: mustHex("#EAEAF2"),
		Grid:       color.White,
		Edge:       mustHex("#3F3F3F"),
		Palette: []color.Color{
			mustHex("#4C72B0"), mustHex("#DD8452"), mustHex("#55A868"), mustHex("#C44E52"),
			mustHex("#8172B3"), mustHex("#937860"), mustHex("#DA8BC3"), mustHex("#8C8C8C"),
			mustHex("#CCB974"), mustHex("#64B5CD"),
		},
		TitleSize: 14,
		LabelSize: 11,
	}
}

// Color returns the k-th palette colour, cycling.
func (th Theme) Color(k int) color.Color {
	return th.Palette[k%len(th.Palette)]
}

// newPlot creates a plot with title, axis labels and the grid applied.
func (th Theme) newPlot(spec models.ChartSpec, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.BackgroundColor = th.Background

	titleSize, labelSize := th.TitleSize, th.LabelSize
	if spec.TitleSize > 0 {
		titleSize = spec.TitleSize
	}
	if spec.LabelSize > 0 {
		labelSize = spec.LabelSize
	}

	p.Title.Text = spec.Title
	p.Title.TextStyle.Font.Size = vg.Points(titleSize)
	p.X.Label.Text = firstNonEmpty(spec.XLabel, xLabel)
	p.X.Label.TextStyle.Font.Size = vg.Points(labelSize)
	p.Y.Label.Text = firstNonEmpty(spec.YLabel, yLabel)
	p.Y.Label.TextStyle.Font.Size = vg.Points(labelSize)

	grid := plotter.NewGrid()
	grid.Vertical.Color = th.Grid
	grid.Vertical.Dashes = nil
	grid.Horizontal.Color = th.Grid
	grid.Horizontal.Dashes = nil
	p.Add(grid)
	return p
}

// ParseColor accepts "#RRGGBB", "#RRGGBBAA" or a CSS colour name.
func ParseColor(s string, fallback color.Color) color.Color {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return fallback
	}
	if strings.HasPrefix(s, "#") {
		if c, ok := parseHex(s); ok {
			return c
		}
		return fallback
	}
	if c, ok := colornames.Map[s]; ok {
		return c
	}
	return fallback
}

func parseHex(s string) (color.NRGBA, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, false
	}
	if len(s) == 6 {
		s += "ff"
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}

func mustHex(s string) color.Color {
	c, ok := parseHex(s)
	if !ok {
		panic("charts: bad colour " + s)
	}
	return c
}

// withAlpha returns c with opacity a in [0, 1]. a <= 0 leaves c unchanged.
func withAlpha(c color.Color, a float64) color.Color {
	if a <= 0 || a >= 1 {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(a*255 + 0.5)
	return n
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
