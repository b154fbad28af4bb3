package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"listing-profiler/utils"
)

// FileName is the name of the page written by Builder.Write.
const FileName = "report.html"

// Section is a block of preformatted console output.
type Section struct {
	Title string
	Body  string
}

// Chart is a rendered chart file shown in the report.
type Chart struct {
	Title string
	Path  string
}

// Builder collects sections and charts and writes them as one HTML page.
type Builder struct {
	Title    string
	sections []Section
	charts   []Chart
	logger   *utils.Logger
}

// NewBuilder returns an empty Builder.
func NewBuilder(title string, logger *utils.Logger) *Builder {
	return &Builder{Title: title, logger: logger}
}

// AddSection appends a text section. Empty bodies are ignored.
func (b *Builder) AddSection(title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	b.sections = append(b.sections, Section{Title: title, Body: body})
}

// AddChart appends a chart by file path.
func (b *Builder) AddChart(title, path string) {
	b.charts = append(b.charts, Chart{Title: title, Path: path})
}

// Sections returns the collected sections in insertion order.
func (b *Builder) Sections() []Section { return b.sections }

// Charts returns the collected charts in insertion order.
func (b *Builder) Charts() []Chart { return b.charts }

type pageChart struct {
	Title string
	Src   string
	Image bool
}

type htmlPage struct {
	Title     string
	Generated string
	Sections  []Section
	Charts    []pageChart
}

// Write renders the page into dir and returns its path. Chart sources are
// made relative to dir so the directory can be moved as a whole.
func (b *Builder) Write(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("report: create dir: %w", err)
	}

	p := htmlPage{
		Title:     b.Title,
		Generated: time.Now().Format("2006-01-02 15:04:05"),
		Sections:  b.sections,
	}
	for _, c := range b.charts {
		src := c.Path
		if rel, err := filepath.Rel(dir, c.Path); err == nil {
			src = filepath.ToSlash(rel)
		}
		ext := strings.ToLower(filepath.Ext(c.Path))
		p.Charts = append(p.Charts, pageChart{
			Title: c.Title,
			Src:   src,
			Image: ext == ".svg" || ext == ".png" || ext == ".jpg" || ext == ".jpeg",
		})
	}

	path := filepath.Join(dir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("report: create %s: %w", path, err)
	}
	if err := pageTemplate.Execute(f, p); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("report: render: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("report: close %s: %w", path, err)
	}

	if b.logger != nil {
		b.logger.Info("[report] %d sections, %d charts written to %s", len(b.sections), len(b.charts), path)
	}
	return path, nil
}

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
h1 { border-bottom: 3px solid #8172B3; padding-bottom: .3em; }
h2 { color: #4C72B0; margin-top: 1.6em; }
pre { background: #EAEAF2; padding: 1em; overflow-x: auto; font-size: 11px; }
figure { margin: 1.5em 0; page-break-inside: avoid; }
figure img { max-width: 100%; }
figcaption { font-weight: bold; margin-bottom: .4em; }
.meta { color: #777; font-size: 12px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">Generated {{.Generated}}</p>
{{range .Sections}}
<h2>{{.Title}}</h2>
<pre>{{.Body}}</pre>
{{end}}
{{if .Charts}}<h2>Charts</h2>{{end}}
{{range .Charts}}
<figure>
<figcaption>{{.Title}}</figcaption>
{{if .Image}}<img src="{{.Src}}" alt="{{.Title}}">{{else}}<a href="{{.Src}}">{{.Src}}</a>{{end}}
</figure>
{{end}}
</body>
</html>
`))
