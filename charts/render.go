package charts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"listing-profiler/models"
	"listing-profiler/table"
	"listing-profiler/utils"
)

// Renderer turns chart specs into image files in OutDir.
type Renderer struct {
	OutDir string
	Format string
	Theme  Theme
	Logger *utils.Logger
}

// NewRenderer creates the output directory and returns a Renderer writing
// files of the given format (svg, png or pdf).
func NewRenderer(outDir, format string, logger *utils.Logger) (*Renderer, error) {
	format = strings.TrimPrefix(strings.ToLower(format), ".")
	switch format {
	case "":
		format = "svg"
	case "svg", "png", "pdf", "jpg", "jpeg", "tif", "tiff", "eps":
	default:
		return nil, fmt.Errorf("charts: unsupported format %q", format)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("charts: create output dir: %w", err)
	}
	return &Renderer{OutDir: outDir, Format: format, Theme: DarkGrid(), Logger: logger}, nil
}

// Render draws spec from t and returns the path of the written file.
func (r *Renderer) Render(spec models.ChartSpec, t *table.Table) (string, error) {
	path := r.path(spec)
	w, h := figSize(spec, 8, 5)

	var (
		p   *plot.Plot
		err error
	)
	switch spec.Kind {
	case models.ChartBox:
		p, err = r.box(spec, t)
	case models.ChartHistogram:
		p, err = r.histogram(spec, t)
	case models.ChartBar:
		p, err = r.bar(spec, t)
	case models.ChartScatter:
		p, err = r.scatter(spec, t)
	case models.ChartHeatmap:
		p, err = r.heatmap(spec, t)
	case models.ChartPair:
		n := vg.Length(len(spec.Vars))
		if spec.FigWidth <= 0 {
			w, h = 2.5*n*vg.Inch, 2.5*n*vg.Inch
		}
		if err := r.pair(spec, t, w, h, path); err != nil {
			return "", fmt.Errorf("charts: %s %q: %w", spec.Kind, spec.Name, err)
		}
		r.logSaved(spec, path)
		return path, nil
	default:
		return "", fmt.Errorf("charts: unknown chart kind %q", spec.Kind)
	}
	if err != nil {
		return "", fmt.Errorf("charts: %s %q: %w", spec.Kind, spec.Name, err)
	}

	if err := p.Save(w, h, path); err != nil {
		return "", fmt.Errorf("charts: save %s: %w", path, err)
	}
	r.logSaved(spec, path)
	return path, nil
}

func (r *Renderer) path(spec models.ChartSpec) string {
	name := spec.Name
	if name == "" {
		name = string(spec.Kind) + "-" + firstNonEmpty(spec.X, spec.Y, "chart")
	}
	name = strings.Map(func(c rune) rune {
		switch c {
		case ' ', '/', '\\', ':':
			return '_'
		}
		return c
	}, name)
	return filepath.Join(r.OutDir, name+"."+r.Format)
}

func (r *Renderer) logSaved(spec models.ChartSpec, path string) {
	if r.Logger != nil {
		r.Logger.Info("[charts] %s chart %q written to %s", spec.Kind, spec.Title, path)
	}
}

// figSize converts the spec's inches to vg lengths, with defaults.
func figSize(spec models.ChartSpec, defW, defH float64) (vg.Length, vg.Length) {
	w, h := spec.FigWidth, spec.FigHeight
	if w <= 0 {
		w = defW
	}
	if h <= 0 {
		h = defH
	}
	return vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
