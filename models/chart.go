package models

// ChartKind selects the visual produced for a ChartSpec.
type ChartKind string

const (
	ChartBox       ChartKind = "box"
	ChartHistogram ChartKind = "histogram"
	ChartBar       ChartKind = "bar"
	ChartScatter   ChartKind = "scatter"
	ChartPair      ChartKind = "pair"
	ChartHeatmap   ChartKind = "heatmap"
)

// ChartSpec is a declarative description of one chart. Zero values pick
// the renderer defaults.
type ChartSpec struct {
	Kind ChartKind
	// Name is the output file name without extension.
	Name   string
	Title  string
	XLabel string
	YLabel string

	// Column bindings. Vars is used by the pair plot.
	X    string
	Y    string
	Hue  string
	Vars []string

	// Bins are explicit histogram edges; BinCount is used when Bins is empty.
	Bins     []float64
	BinCount int
	KDE      bool

	// Color and EdgeColor accept "#RRGGBB" or a CSS colour name.
	Color     string
	EdgeColor string
	Alpha     float64
	Width     float64 // box width as a fraction of the axis band
	LineWidth float64 // points
	FlierSize float64 // points
	ShowMeans bool
	Annotate  bool

	// Figure size in inches and font sizes in points.
	FigWidth  float64
	FigHeight float64
	TitleSize float64
	LabelSize float64
}
