package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-profiler/utils"
)

func TestBuilderWrite(t *testing.T) {
	dir := t.TempDir()
	chartDir := filepath.Join(dir, "charts")
	require.NoError(t, os.MkdirAll(chartDir, 0755))

	b := NewBuilder("Listings profile", utils.NewNopLogger())
	b.AddSection("Shape", "rows: 2\ncols: <3>")
	b.AddSection("Empty", "   \n")
	b.AddChart("Price box", filepath.Join(chartDir, "price_box.svg"))
	b.AddChart("Heatmap", filepath.Join(chartDir, "heatmap.pdf"))

	require.Len(t, b.Sections(), 1)
	require.Len(t, b.Charts(), 2)

	path, err := b.Write(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(raw)

	assert.Contains(t, html, "<title>Listings profile</title>")
	assert.Contains(t, html, "<h2>Shape</h2>")
	assert.Contains(t, html, "cols: &lt;3&gt;")
	assert.NotContains(t, html, "<h2>Empty</h2>")
	assert.Contains(t, html, `<img src="charts/price_box.svg" alt="Price box">`)
	assert.Contains(t, html, `<a href="charts/heatmap.pdf">`)
}

func TestBuilderWriteWithoutCharts(t *testing.T) {
	b := NewBuilder("Empty", nil)
	path, err := b.Write(filepath.Join(t.TempDir(), "nested"))
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "<h2>Charts</h2>")
}

func TestExportMissingHTML(t *testing.T) {
	e := NewPDFExporter("", 1, utils.NewNopLogger())
	err := e.Export(context.Background(), filepath.Join(t.TempDir(), "missing.html"), filepath.Join(t.TempDir(), "out.pdf"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindChromeBinaryPrefersEnv(t *testing.T) {
	t.Setenv("CHROME_BIN", "/opt/custom/chrome")
	assert.Equal(t, "/opt/custom/chrome", findChromeBinary())
}
