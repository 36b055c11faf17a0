package plots

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// matrixGrid adapts a row-major matrix to the gonum grid interface.
// Row 0 of the matrix renders at the top of the figure, so grid rows
// are flipped (gonum's y grows upward).
type matrixGrid struct {
	z [][]float64
}

func (g matrixGrid) Dims() (c, r int) { return len(g.z[0]), len(g.z) }

func (g matrixGrid) Z(c, r int) float64 { return g.z[len(g.z)-1-r][c] }

func (g matrixGrid) X(c int) float64 { return float64(c) }

func (g matrixGrid) Y(r int) float64 { return float64(r) }

func colorMapByName(name string) (palette.ColorMap, error) {
	switch name {
	case "blue-red":
		return moreland.SmoothBlueRed(), nil
	case "kindlmann":
		return moreland.Kindlmann(), nil
	case "extended-kindlmann":
		return moreland.ExtendedKindlmann(), nil
	case "black-body":
		return moreland.BlackBody(), nil
	default:
		return nil, fmt.Errorf("unknown palette %q", name)
	}
}

// RenderHeatMap draws a matrix as a colored cell grid with a side
// colorbar and saves it to filename.
func RenderHeatMap(params HeatMapParams, filename string) error {
	params.applyDefaults()

	rows := len(params.Z)
	if rows == 0 || len(params.Z[0]) == 0 {
		return fmt.Errorf("heatmap: empty matrix")
	}
	cols := len(params.Z[0])
	for i, row := range params.Z {
		if len(row) != cols {
			return fmt.Errorf("heatmap: ragged matrix (row %d has %d values, want %d)", i, len(row), cols)
		}
	}

	zmin, zmax := math.Inf(1), math.Inf(-1)
	for _, row := range params.Z {
		zmin, zmax = rangeOf(zmin, zmax, row...)
	}
	if params.Min != nil {
		zmin = *params.Min
	}
	if params.Max != nil {
		zmax = *params.Max
	}
	if math.IsInf(zmin, 1) {
		return fmt.Errorf("heatmap: matrix has no finite values")
	}
	if zmin >= zmax {
		zmax = zmin + 1 // constant matrix still needs a color range
	}

	cm, err := colorMapByName(params.Palette)
	if err != nil {
		return fmt.Errorf("heatmap: %w", err)
	}
	cm.SetMin(zmin)
	cm.SetMax(zmax)

	hm := plotter.NewHeatMap(matrixGrid{z: params.Z}, cm.Palette(255))
	hm.Min, hm.Max = zmin, zmax

	p := plot.New()
	p.Title.Text = params.Title
	p.Title.TextStyle.Font.Size = vg.Points(params.TitleFontSize)
	p.Add(hm)

	p.X.Label.Text = params.XLabel
	p.Y.Label.Text = params.YLabel
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Font.Size = vg.Points(params.AxisFontSize)
		ax.Tick.Label.Font.Size = vg.Points(params.TickFontSize)
		ax.LineStyle.Width = vg.Points(params.FrameWidth)
		ax.Tick.LineStyle.Width = vg.Points(params.TickWidth)
		ax.Tick.Length = vg.Points(params.TickLen)
	}
	p.X.Tick.Marker = cellTicks(params.XTicks, cols, false)
	p.Y.Tick.Marker = cellTicks(params.YTicks, rows, true)

	if err := addRuleLines(p, params.VLines, params.HLines, -0.5, float64(cols)-0.5, -0.5, float64(rows)-0.5, params.FrameWidth); err != nil {
		return fmt.Errorf("heatmap: %w", err)
	}

	p.X.Min, p.X.Max = -0.5, float64(cols)-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(rows)-0.5

	cb := plot.New()
	cb.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true})
	cb.HideX()
	cb.Y.Tick.Label.Font.Size = vg.Points(params.TickFontSize)
	cb.Y.Tick.LineStyle.Width = vg.Points(params.TickWidth)
	cb.Y.Tick.Length = vg.Points(params.ColorBar.TickLen)
	cb.Y.LineStyle.Width = vg.Points(params.FrameWidth)
	longest := 5
	if len(params.ColorBar.Ticks) > 0 {
		ticks := make([]plot.Tick, len(params.ColorBar.Ticks))
		longest = 0
		for i, t := range params.ColorBar.Ticks {
			ticks[i] = plot.Tick{Value: t.Value, Label: t.Label}
			if len(t.Label) > longest {
				longest = len(t.Label)
			}
		}
		cb.Y.Tick.Marker = plot.ConstantTicks(ticks)
	}

	return writeFigure(filename, params.Figure, func(dc draw.Canvas) error {
		width := dc.Max.X - dc.Min.X
		barW := vg.Length(params.ColorBar.WidthFrac) * width
		pad := vg.Length(params.ColorBar.PadFrac) * width
		labelW := vg.Points(8 + 0.62*params.TickFontSize*float64(longest))
		stripW := barW + labelW

		main := draw.Crop(dc, 0, -(stripW + pad), 0, 0)
		strip := draw.Crop(dc, width-stripW, 0, 0, 0)

		p.Draw(main)
		cb.Draw(strip)

		da := p.DataCanvas(main)
		strokeFrame(da, draw.LineStyle{Color: color.Black, Width: vg.Points(params.FrameWidth)})
		drawCornerLabel(p, da, params.Label, params.LabelCoords, params.LabelFontSize)
		return nil
	})
}

// cellTicks builds the tick marker for a heat map axis: explicit ticks
// when given (values are matrix indices; the y axis flips them so row
// 0 reads from the top), otherwise an unlabeled mark per cell.
func cellTicks(ticks []Tick, n int, flip bool) plot.Ticker {
	out := make([]plot.Tick, 0, len(ticks))
	if len(ticks) == 0 {
		for i := 0; i < n; i++ {
			out = append(out, plot.Tick{Value: float64(i)})
		}
		return plot.ConstantTicks(out)
	}
	for _, t := range ticks {
		v := t.Value
		if flip {
			v = float64(n-1) - v
		}
		out = append(out, plot.Tick{Value: v, Label: t.Label})
	}
	return plot.ConstantTicks(out)
}
