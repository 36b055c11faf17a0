package plots

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// scaleMap maps between data values and normalized [0, 1] positions on
// an axis, in log space for log axes. Twin scales are implemented by
// composing one map's norm with the other's at.
type scaleMap struct {
	lo, hi float64
	log    bool
}

func (m scaleMap) norm(v float64) float64 {
	if m.log {
		return (math.Log(v) - math.Log(m.lo)) / (math.Log(m.hi) - math.Log(m.lo))
	}
	return (v - m.lo) / (m.hi - m.lo)
}

func (m scaleMap) at(t float64) float64 {
	if m.log {
		return math.Exp(math.Log(m.lo) + t*(math.Log(m.hi)-math.Log(m.lo)))
	}
	return m.lo + t*(m.hi-m.lo)
}

// errData adapts a point set with symmetric error bars to the gonum
// error bar plotters. Low/High are stored per point so right-scale
// series can carry asymmetric mapped errors.
type errData struct {
	xys       plotter.XYs
	low, high []float64
}

func (d errData) Len() int { return len(d.xys) }

func (d errData) XY(i int) (float64, float64) { return d.xys[i].X, d.xys[i].Y }

func (d errData) YError(i int) (float64, float64) { return d.low[i], d.high[i] }

func (d errData) XError(i int) (float64, float64) { return d.low[i], d.high[i] }

// RenderPlot draws one or more xy series into a single figure and
// saves it to filename (format from the extension). Series bound to
// the right y-scale are ranged independently and the right axis is
// drawn in the margin.
func RenderPlot(params PlotParams, filename string) error {
	params.applyDefaults()
	if len(params.Series) == 0 {
		return fmt.Errorf("plot: no series to draw")
	}
	for i, s := range params.Series {
		if err := s.Data.validate(seriesName(s, i)); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
	}

	// Observed data extents, error bars included.
	xmin, xmax := math.Inf(1), math.Inf(-1)
	lmin, lmax := math.Inf(1), math.Inf(-1)
	rmin, rmax := math.Inf(1), math.Inf(-1)
	hasRight := false
	for _, s := range params.Series {
		xmin, xmax = rangeOf(xmin, xmax, s.Data.X...)
		if s.Data.XErr != nil {
			for j, x := range s.Data.X {
				xmin, xmax = rangeOf(xmin, xmax, x-s.Data.XErr[j], x+s.Data.XErr[j])
			}
		}
		ymin, ymax := math.Inf(1), math.Inf(-1)
		ymin, ymax = rangeOf(ymin, ymax, s.Data.Y...)
		if s.Data.YErr != nil {
			for j, y := range s.Data.Y {
				ymin, ymax = rangeOf(ymin, ymax, y-s.Data.YErr[j], y+s.Data.YErr[j])
			}
		}
		if s.Right {
			hasRight = true
			rmin, rmax = rangeOf(rmin, rmax, ymin, ymax)
		} else {
			lmin, lmax = rangeOf(lmin, lmax, ymin, ymax)
		}
	}
	if math.IsInf(lmin, 1) {
		// All series bound right; range the left scale over them so the
		// frame still has sane ticks.
		lmin, lmax = rmin, rmax
	}

	xlo, xhi, err := resolveRange(params.X, xmin, xmax)
	if err != nil {
		return fmt.Errorf("plot: x axis: %w", err)
	}
	llo, lhi, err := resolveRange(params.YLeft, lmin, lmax)
	if err != nil {
		return fmt.Errorf("plot: y axis: %w", err)
	}
	leftMap := scaleMap{lo: llo, hi: lhi, log: params.YLeft.Log}

	var rightMap scaleMap
	if hasRight {
		rlo, rhi, err := resolveRange(params.YRight, rmin, rmax)
		if err != nil {
			return fmt.Errorf("plot: right y axis: %w", err)
		}
		rightMap = scaleMap{lo: rlo, hi: rhi, log: params.YRight.Log}
	}
	toLeft := func(v float64) float64 { return leftMap.at(rightMap.norm(v)) }

	p := plot.New()
	p.Title.Text = params.Title
	p.Title.TextStyle.Font.Size = vg.Points(params.TitleFontSize)

	strokeWidth := 2 * params.LineWidth / 3
	styleAxis(&p.X, params.X, strokeWidth, params.MajorTickLen, params.AxisFontSize, params.TickFontSize)
	styleAxis(&p.Y, params.YLeft, strokeWidth, params.MajorTickLen, params.AxisFontSize, params.TickFontSize)

	if params.GridLineWidth > 0 {
		grid := plotter.NewGrid()
		grid.Vertical.Width = vg.Points(params.GridLineWidth)
		grid.Horizontal.Width = vg.Points(params.GridLineWidth)
		p.Add(grid)
	}

	showLegend := false
	for i, s := range params.Series {
		col, err := seriesColor(s.Color, i)
		if err != nil {
			return fmt.Errorf("plot: %w", err)
		}
		xys, low, high := seriesPoints(s, toLeft)

		var thumbs []plot.Thumbnailer
		if s.Scatter || s.Marker != "" {
			shape, err := glyphShape(s.Marker)
			if err != nil {
				return fmt.Errorf("plot: series %q: %w", seriesName(s, i), err)
			}
			sc, err := plotter.NewScatter(xys)
			if err != nil {
				return fmt.Errorf("plot: series %q: %w", seriesName(s, i), err)
			}
			sc.GlyphStyle = draw.GlyphStyle{
				Color:  col,
				Radius: vg.Points(params.MarkerSize / 2),
				Shape:  shape,
			}
			p.Add(sc)
			thumbs = append(thumbs, sc)
		}
		if !s.Scatter && s.Line != "none" {
			dashes, err := dashPattern(s.Line, vg.Points(params.LineWidth))
			if err != nil {
				return fmt.Errorf("plot: series %q: %w", seriesName(s, i), err)
			}
			ln, err := plotter.NewLine(xys)
			if err != nil {
				return fmt.Errorf("plot: series %q: %w", seriesName(s, i), err)
			}
			ln.LineStyle = draw.LineStyle{Color: col, Width: vg.Points(params.LineWidth), Dashes: dashes}
			p.Add(ln)
			thumbs = append([]plot.Thumbnailer{ln}, thumbs...)
		}

		barSty := draw.LineStyle{Color: col, Width: vg.Points(strokeWidth)}
		if s.Data.YErr != nil {
			eb, err := plotter.NewYErrorBars(errData{xys: xys, low: low, high: high})
			if err != nil {
				return fmt.Errorf("plot: series %q: %w", seriesName(s, i), err)
			}
			eb.LineStyle = barSty
			p.Add(eb)
		}
		if s.Data.XErr != nil {
			xerr := make([]float64, len(s.Data.XErr))
			copy(xerr, s.Data.XErr)
			eb, err := plotter.NewXErrorBars(errData{xys: xys, low: xerr, high: xerr})
			if err != nil {
				return fmt.Errorf("plot: series %q: %w", seriesName(s, i), err)
			}
			eb.LineStyle = barSty
			p.Add(eb)
		}

		if s.Name != "" && len(thumbs) > 0 {
			showLegend = true
			p.Legend.Add(s.Name, thumbs...)
		}
	}

	if err := addRuleLines(p, params.VLines, params.HLines, xlo, xhi, llo, lhi, params.LineWidth); err != nil {
		return fmt.Errorf("plot: %w", err)
	}

	if showLegend {
		placeLegend(p, params.LegendLoc, params.LegendFontSize)
	}

	p.X.Min, p.X.Max = xlo, xhi
	p.Y.Min, p.Y.Max = llo, lhi

	margin := vg.Length(0)
	if hasRight {
		margin = rightAxisMargin(params, rightMap)
	}

	return writeFigure(filename, params.Figure, func(dc draw.Canvas) error {
		area := dc
		if hasRight {
			area = draw.Crop(dc, 0, -margin, 0, 0)
		}
		p.Draw(area)
		da := p.DataCanvas(area)
		frameSty := draw.LineStyle{Color: color.Black, Width: vg.Points(strokeWidth)}
		strokeFrame(da, frameSty)
		mirrorTicks(p, da, params.MajorTickLen, params.MinorTickLen, strokeWidth, !hasRight)
		if hasRight {
			drawRightAxis(p, da, rightAxis{
				Label:  params.YRight.Label,
				Min:    rightMap.lo,
				Max:    rightMap.hi,
				Ticker: axisTicker(params.YRight),
				toLeft: toLeft,
			}, params.MajorTickLen, params.MinorTickLen, strokeWidth, params.TickFontSize, params.AxisFontSize)
		}
		drawCornerLabel(p, da, params.Label, params.LabelCoords, params.LabelFontSize)
		return nil
	})
}

func seriesName(s Series, i int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("#%d", i)
}

func seriesColor(name string, i int) (color.Color, error) {
	if name == "" {
		return plotutil.Color(i), nil
	}
	return parseColor(name)
}

// seriesPoints converts a series to plot points, mapping right-scale
// series into left data space. Returned low/high are the y error bar
// extents in plot space.
func seriesPoints(s Series, toLeft func(float64) float64) (plotter.XYs, []float64, []float64) {
	n := s.Data.Len()
	xys := make(plotter.XYs, n)
	var low, high []float64
	if s.Data.YErr != nil {
		low = make([]float64, n)
		high = make([]float64, n)
	}
	for j := 0; j < n; j++ {
		x, y := s.Data.X[j], s.Data.Y[j]
		if s.Right {
			center := toLeft(y)
			if s.Data.YErr != nil {
				low[j] = center - toLeft(y-s.Data.YErr[j])
				high[j] = toLeft(y+s.Data.YErr[j]) - center
			}
			y = center
		} else if s.Data.YErr != nil {
			low[j] = s.Data.YErr[j]
			high[j] = s.Data.YErr[j]
		}
		xys[j].X, xys[j].Y = x, y
	}
	return xys, low, high
}

// addRuleLines adds vertical and horizontal reference lines spanning
// the resolved axis ranges.
func addRuleLines(p *plot.Plot, vlines, hlines []RuleLine, xlo, xhi, ylo, yhi, defaultWidth float64) error {
	add := func(r RuleLine, pts plotter.XYs) error {
		col := color.Color(color.Gray{Y: 0x50})
		if r.Color != "" {
			var err error
			if col, err = parseColor(r.Color); err != nil {
				return err
			}
		}
		w := r.Width
		if w == 0 {
			w = 2 * defaultWidth / 3
		}
		dashes, err := dashPattern(r.Line, vg.Points(w))
		if err != nil {
			return err
		}
		ln, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		ln.LineStyle = draw.LineStyle{Color: col, Width: vg.Points(w), Dashes: dashes}
		p.Add(ln)
		return nil
	}
	for _, r := range vlines {
		if err := add(r, plotter.XYs{{X: r.At, Y: ylo}, {X: r.At, Y: yhi}}); err != nil {
			return fmt.Errorf("vline at %v: %w", r.At, err)
		}
	}
	for _, r := range hlines {
		if err := add(r, plotter.XYs{{X: xlo, Y: r.At}, {X: xhi, Y: r.At}}); err != nil {
			return fmt.Errorf("hline at %v: %w", r.At, err)
		}
	}
	return nil
}

// rightAxisMargin estimates the margin needed for the right axis tick
// labels and rotated axis label.
func rightAxisMargin(params PlotParams, m scaleMap) vg.Length {
	longest := 0
	for _, t := range axisTicker(params.YRight).Ticks(m.lo, m.hi) {
		if len(t.Label) > longest {
			longest = len(t.Label)
		}
	}
	margin := vg.Points(8 + 0.62*params.TickFontSize*float64(longest))
	if params.YRight.Label != "" {
		margin += vg.Points(1.6 * params.AxisFontSize)
	}
	return margin
}
