package plots

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireFigure(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err, "figure was not written")
	assert.Greater(t, info.Size(), int64(0), "figure file is empty")
}

func TestRenderPlot(t *testing.T) {
	dir := t.TempDir()

	xs := []float64{0, 1, 2, 3, 4}
	params := NewPlotParams(
		Series{
			Name: "signal",
			Data: XYData{X: xs, Y: []float64{1, 3, 2, 5, 4}, YErr: []float64{0.5, 0.5, 0.5, 0.5, 0.5}},
		},
		Series{
			Name:   "reference",
			Data:   XYData{X: xs, Y: []float64{2, 2, 2, 2, 2}},
			Color:  "gray",
			Line:   "--",
			Marker: "s",
		},
	)
	params.Title = "signal vs reference"
	params.X.Label = "time"
	params.YLeft.Label = "amplitude"
	params.Label = "(a)"
	params.VLines = []RuleLine{{At: 2.5, Line: ":"}}

	for _, ext := range []string{".png", ".pdf", ".svg", ".eps"} {
		t.Run(ext, func(t *testing.T) {
			out := filepath.Join(dir, "plot"+ext)
			require.NoError(t, RenderPlot(params, out))
			requireFigure(t, out)
		})
	}
}

func TestRenderPlot_TwinAxes(t *testing.T) {
	dir := t.TempDir()

	xs := []float64{1, 2, 3, 4}
	params := NewPlotParams(
		Series{Name: "left", Data: XYData{X: xs, Y: []float64{0.1, 0.2, 0.15, 0.3}}},
		Series{Name: "right", Data: XYData{X: xs, Y: []float64{100, 400, 900, 1600}}, Right: true},
	)
	params.YLeft.Label = "fraction"
	params.YRight.Label = "count"

	out := filepath.Join(dir, "twin.png")
	require.NoError(t, RenderPlot(params, out))
	requireFigure(t, out)
}

func TestRenderPlot_LogAxes(t *testing.T) {
	dir := t.TempDir()

	params := NewPlotParams(Series{
		Data:    XYData{X: []float64{1, 10, 100}, Y: []float64{1, 100, 10000}},
		Scatter: true,
	})
	params.X.Log = true
	params.YLeft.Log = true

	out := filepath.Join(dir, "log.png")
	require.NoError(t, RenderPlot(params, out))
	requireFigure(t, out)
}

func TestRenderPlot_Errors(t *testing.T) {
	dir := t.TempDir()
	ok := Series{Data: XYData{X: []float64{1}, Y: []float64{1}}}

	t.Run("no series", func(t *testing.T) {
		err := RenderPlot(NewPlotParams(), filepath.Join(dir, "x.png"))
		assert.Error(t, err)
	})

	t.Run("length mismatch", func(t *testing.T) {
		p := NewPlotParams(Series{Name: "bad", Data: XYData{X: []float64{1, 2}, Y: []float64{1}}})
		err := RenderPlot(p, filepath.Join(dir, "x.png"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"bad"`)
	})

	t.Run("log axis with nonpositive data", func(t *testing.T) {
		p := NewPlotParams(Series{Data: XYData{X: []float64{-1, 1}, Y: []float64{1, 2}}})
		p.X.Log = true
		assert.Error(t, RenderPlot(p, filepath.Join(dir, "x.png")))
	})

	t.Run("unknown color", func(t *testing.T) {
		p := NewPlotParams(ok)
		p.Series[0].Color = "chartreuse-ish"
		assert.Error(t, RenderPlot(p, filepath.Join(dir, "x.png")))
	})

	t.Run("missing extension", func(t *testing.T) {
		assert.Error(t, RenderPlot(NewPlotParams(ok), filepath.Join(dir, "noext")))
	})

	t.Run("unsupported format", func(t *testing.T) {
		assert.Error(t, RenderPlot(NewPlotParams(ok), filepath.Join(dir, "fig.bmp")))
	})
}

func TestRenderHeatMap(t *testing.T) {
	dir := t.TempDir()

	params := NewHeatMapParams([][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})
	params.XLabel = "column"
	params.YLabel = "row"
	params.XTicks = []Tick{{Value: 0, Label: "a"}, {Value: 2, Label: "c"}}
	params.ColorBar.Ticks = []Tick{{Value: 1, Label: "1"}, {Value: 6, Label: "6"}}

	out := filepath.Join(dir, "heat.png")
	require.NoError(t, RenderHeatMap(params, out))
	requireFigure(t, out)
}

func TestRenderHeatMap_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty matrix", func(t *testing.T) {
		assert.Error(t, RenderHeatMap(NewHeatMapParams(nil), filepath.Join(dir, "x.png")))
	})

	t.Run("ragged matrix", func(t *testing.T) {
		p := NewHeatMapParams([][]float64{{1, 2}, {3}})
		err := RenderHeatMap(p, filepath.Join(dir, "x.png"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ragged")
	})

	t.Run("unknown palette", func(t *testing.T) {
		p := NewHeatMapParams([][]float64{{1}})
		p.Palette = "rainbow"
		assert.Error(t, RenderHeatMap(p, filepath.Join(dir, "x.png")))
	})
}

func TestRenderHeatMap_ConstantMatrix(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "flat.png")
	require.NoError(t, RenderHeatMap(NewHeatMapParams([][]float64{{7, 7}, {7, 7}}), out))
	requireFigure(t, out)
}

func TestMatrixGrid_RowZeroAtTop(t *testing.T) {
	g := matrixGrid{z: [][]float64{
		{1, 2},
		{3, 4},
	}}
	c, r := g.Dims()
	assert.Equal(t, 2, c)
	assert.Equal(t, 2, r)

	// Grid y grows upward, so the top grid row holds matrix row 0.
	assert.Equal(t, 3.0, g.Z(0, 0))
	assert.Equal(t, 1.0, g.Z(0, 1))
	assert.Equal(t, 4.0, g.Z(1, 0))
	assert.Equal(t, 2.0, g.Z(1, 1))
}

func TestRenderHist(t *testing.T) {
	dir := t.TempDir()

	params := NewHistParams(
		HistSet{Name: "a", Data: XData{X: []float64{1, 2, 2, 3, 3, 3, 4}}},
		HistSet{Name: "b", Data: XData{X: []float64{2, 4, 4, 5}}, Color: "orange"},
	)
	params.Bins = 5
	params.X.Label = "value"
	params.Y.Label = "count"

	out := filepath.Join(dir, "hist.png")
	require.NoError(t, RenderHist(params, out))
	requireFigure(t, out)
}

func TestRenderHist_CumulativeDensity(t *testing.T) {
	dir := t.TempDir()

	params := NewHistParams(HistSet{Data: XData{X: []float64{1, 1, 2, 3, 5, 8}}})
	params.Cumulative = true
	params.Density = true

	out := filepath.Join(dir, "cdf.pdf")
	require.NoError(t, RenderHist(params, out))
	requireFigure(t, out)
}

func TestRenderHist_LeavesParamsUntouched(t *testing.T) {
	dir := t.TempDir()

	sets := []HistSet{{Name: "a", Data: XData{X: []float64{1, 2, 3}}}}
	params := HistParams{Sets: sets}

	require.NoError(t, RenderHist(params, filepath.Join(dir, "h.png")))
	assert.Equal(t, 0.0, sets[0].Alpha, "defaulting must not write through the caller's slice")
}

func TestRenderHist_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("no sets", func(t *testing.T) {
		assert.Error(t, RenderHist(NewHistParams(), filepath.Join(dir, "x.png")))
	})

	t.Run("empty set", func(t *testing.T) {
		assert.Error(t, RenderHist(NewHistParams(HistSet{Name: "e"}), filepath.Join(dir, "x.png")))
	})
}
